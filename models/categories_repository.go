package models

import (
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"

	"github.com/lankamart/storefront/store"
)

// ErrCategoryNotFound is returned when a category is not found.
var ErrCategoryNotFound = errors.New("category not found")

// Relabeler rewrites the category label carried by products.
type Relabeler interface {
	RelabelCategory(ctx context.Context, from, to LocalizedString) (int, error)
}

type CategoriesRepository struct {
	doc      *document[[]Category]
	products Relabeler
}

// NewCategoriesRepository loads the persisted shelf categories. Renames are
// propagated to products through products, which may be nil.
func NewCategoriesRepository(ctx context.Context, st *store.Store, products Relabeler) *CategoriesRepository {
	return &CategoriesRepository{
		doc:      loadDocument(ctx, st, store.KeyCategories, SeedCategories()),
		products: products,
	}
}

func (r *CategoriesRepository) GetAllCategories() []Category {
	return slices.Clone(r.doc.get())
}

func (r *CategoriesRepository) GetByID(id string) (*Category, error) {
	for _, c := range r.doc.get() {
		if c.ID == id {
			category := c
			return &category, nil
		}
	}
	return nil, ErrCategoryNotFound
}

// CreateCategory prepends a new category, generating its ID when blank.
func (r *CategoriesRepository) CreateCategory(ctx context.Context, category *Category) error {
	if category.ID == "" {
		category.ID = "cat-" + uuid.NewString()
	}
	return r.doc.update(ctx, func(categories []Category) ([]Category, error) {
		return append([]Category{*category}, categories...), nil
	})
}

// UpdateCategory replaces the category with the same ID. When the name
// changes, products filed under the old name follow it.
func (r *CategoriesRepository) UpdateCategory(ctx context.Context, category Category) error {
	var previous Category
	err := r.doc.update(ctx, func(categories []Category) ([]Category, error) {
		i := slices.IndexFunc(categories, func(c Category) bool { return c.ID == category.ID })
		if i < 0 {
			return nil, ErrCategoryNotFound
		}
		previous = categories[i]
		next := slices.Clone(categories)
		next[i] = category
		return next, nil
	})
	if err != nil {
		return err
	}

	if r.products != nil && previous.Name != category.Name {
		if _, err := r.products.RelabelCategory(ctx, previous.Name, category.Name); err != nil {
			return err
		}
	}
	return nil
}

func (r *CategoriesRepository) DeleteCategory(ctx context.Context, id string) error {
	return r.doc.update(ctx, func(categories []Category) ([]Category, error) {
		i := slices.IndexFunc(categories, func(c Category) bool { return c.ID == id })
		if i < 0 {
			return nil, ErrCategoryNotFound
		}
		return slices.Delete(slices.Clone(categories), i, i+1), nil
	})
}
