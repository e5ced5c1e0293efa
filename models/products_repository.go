package models

import (
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"

	"github.com/lankamart/storefront/store"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

type ProductsRepository struct {
	doc *document[[]Product]
}

type ProductFilters struct {
	Shelf         *bool
	CategoryLabel string
	PriceLessThan *float64
}

// NewProductsRepository loads the persisted catalog, falling back to the seed
// catalog when nothing usable is stored.
func NewProductsRepository(ctx context.Context, st *store.Store) *ProductsRepository {
	return &ProductsRepository{
		doc: loadDocument(ctx, st, store.KeyProducts, SeedProducts()),
	}
}

func (r *ProductsRepository) GetAllProducts() []Product {
	return slices.Clone(r.doc.get())
}

func (r *ProductsRepository) Count() int {
	return len(r.doc.get())
}

// GetFilteredProducts pages through the products matching filters and
// reports the total matching count.
func (r *ProductsRepository) GetFilteredProducts(offset, limit int, filters ProductFilters) ([]Product, int64) {
	var matched []Product
	for _, p := range r.doc.get() {
		if filters.Shelf != nil && p.IsShelfItem != *filters.Shelf {
			continue
		}
		if filters.CategoryLabel != "" && p.Category.Get(DefaultLanguage) != filters.CategoryLabel {
			continue
		}
		if filters.PriceLessThan != nil {
			amount, ok := p.Price.Amount()
			if !ok || amount.InexactFloat64() >= *filters.PriceLessThan {
				continue
			}
		}
		matched = append(matched, p)
	}

	total := int64(len(matched))
	if offset < 0 || limit < 0 {
		return []Product{}, total
	}
	start := min(offset, len(matched))
	end := start + min(limit, len(matched)-start)
	return matched[start:end], total
}

// Featured returns the non-shelf products in catalog order.
func (r *ProductsRepository) Featured() []Product {
	var out []Product
	for _, p := range r.doc.get() {
		if !p.IsShelfItem {
			out = append(out, p)
		}
	}
	return out
}

// ShelfByCategory returns the shelf items whose Vietnamese category label is
// exactly label.
func (r *ProductsRepository) ShelfByCategory(label string) []Product {
	var out []Product
	for _, p := range r.doc.get() {
		if p.IsShelfItem && p.Category.Get(DefaultLanguage) == label {
			out = append(out, p)
		}
	}
	return out
}

func (r *ProductsRepository) GetByID(id string) (*Product, error) {
	for _, p := range r.doc.get() {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

// Upsert replaces the product with the same ID or prepends a new one. A blank
// ID is generated.
func (r *ProductsRepository) Upsert(ctx context.Context, p Product) (Product, error) {
	if p.ID == "" {
		p.ID = "p-" + uuid.NewString()
	}
	err := r.doc.update(ctx, func(products []Product) ([]Product, error) {
		next := slices.Clone(products)
		for i := range next {
			if next[i].ID == p.ID {
				next[i] = p
				return next, nil
			}
		}
		return append([]Product{p}, next...), nil
	})
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *ProductsRepository) Delete(ctx context.Context, id string) error {
	return r.doc.update(ctx, func(products []Product) ([]Product, error) {
		i := slices.IndexFunc(products, func(p Product) bool { return p.ID == id })
		if i < 0 {
			return nil, ErrProductNotFound
		}
		return slices.Delete(slices.Clone(products), i, i+1), nil
	})
}

// RelabelCategory moves every product labelled from (by Vietnamese label) to
// the label to, returning how many products changed.
func (r *ProductsRepository) RelabelCategory(ctx context.Context, from, to LocalizedString) (int, error) {
	oldLabel := from.Get(DefaultLanguage)
	changed := 0
	err := r.doc.update(ctx, func(products []Product) ([]Product, error) {
		next := slices.Clone(products)
		for i := range next {
			if next[i].Category.Get(DefaultLanguage) == oldLabel {
				next[i].Category = to
				changed++
			}
		}
		return next, nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}
