package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/lankamart/storefront/app/response"
	"github.com/lankamart/storefront/models"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

// Product is a catalog card rendered for one language.
type Product struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Price       models.Price      `json:"price"`
	PriceLabel  models.PriceLabel `json:"priceLabel"`
	Image       string            `json:"image"`
	Rating      float64           `json:"rating"`
	Reviews     int               `json:"reviews"`
	IsShelfItem bool              `json:"isShelfItem"`
	Stock       *int              `json:"stock,omitempty"`
}

// ProductDetail is the full localized product plus its rendered price.
type ProductDetail struct {
	models.Product
	PriceLabel models.PriceLabel `json:"priceLabel"`
}

type TipResponse struct {
	ProductID string `json:"productId"`
	Tip       string `json:"tip"`
}

type ProductProvider interface {
	GetFilteredProducts(offset, limit int, filters models.ProductFilters) ([]models.Product, int64)
	Featured() []models.Product
	ShelfByCategory(label string) []models.Product
	GetByID(id string) (*models.Product, error)
	Upsert(ctx context.Context, p models.Product) (models.Product, error)
	Delete(ctx context.Context, id string) error
}

type TipProvider interface {
	CookingTip(ctx context.Context, p models.Product, lang models.Language) string
}

type CatalogHandler struct {
	repo ProductProvider
	tips TipProvider
}

// NewCatalogHandler builds the catalog handler. tips may be nil, in which
// case cooking tips are empty unless stored on the product.
func NewCatalogHandler(r ProductProvider, tips TipProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
		tips: tips,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	lang, ok := language(w, r)
	if !ok {
		return
	}

	// Parse pagination query params
	offset := 0
	limit := 10

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	// Parse filters
	filters := models.ProductFilters{
		CategoryLabel: r.URL.Query().Get("category"),
	}

	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		if val, err := strconv.ParseFloat(priceStr, 64); err == nil {
			filters.PriceLessThan = &val
		}
	}

	if shelfStr := r.URL.Query().Get("shelf"); shelfStr != "" {
		if val, err := strconv.ParseBool(shelfStr); err == nil {
			filters.Shelf = &val
		}
	}

	res, total := h.repo.GetFilteredProducts(offset, limit, filters)

	response.OK(w, Response{
		Total:    int(total),
		Products: cards(res, lang),
	})
}

// HandleFeatured lists the home-surface products: everything that is not a
// shelf item.
func (h *CatalogHandler) HandleFeatured(w http.ResponseWriter, r *http.Request) {
	lang, ok := language(w, r)
	if !ok {
		return
	}
	res := h.repo.Featured()
	response.OK(w, Response{Total: len(res), Products: cards(res, lang)})
}

// HandleShelf lists the shelf items of one category, selected by its
// Vietnamese label.
func (h *CatalogHandler) HandleShelf(w http.ResponseWriter, r *http.Request) {
	lang, ok := language(w, r)
	if !ok {
		return
	}
	label := r.URL.Query().Get("category")
	if label == "" {
		response.Error(w, http.StatusBadRequest, "Missing category")
		return
	}
	res := h.repo.ShelfByCategory(label)
	response.OK(w, Response{Total: len(res), Products: cards(res, lang)})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	lang, ok := language(w, r)
	if !ok {
		return
	}

	product, ok := h.lookup(w, r.PathValue("id"))
	if !ok {
		return
	}

	response.OK(w, ProductDetail{
		Product:    *product,
		PriceLabel: models.FormatDisplayPrice(product.Price, lang, true),
	})
}

// HandleCreate adds a product; the ID is generated.
func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input models.Product
	if err := response.Decode(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	input.ID = ""
	h.save(w, r, input, http.StatusCreated)
}

// HandleUpdate replaces the product under the path ID, or prepends it when
// no product has that ID yet.
func (h *CatalogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input models.Product
	if err := response.Decode(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	input.ID = r.PathValue("id")
	if input.ID == "" {
		response.Error(w, http.StatusBadRequest, "Missing product id")
		return
	}
	h.save(w, r, input, http.StatusOK)
}

func (h *CatalogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.repo.Delete(r.Context(), r.PathValue("id"))
	switch {
	case errors.Is(err, models.ErrProductNotFound):
		response.Error(w, http.StatusNotFound, "Product not found")
	case err != nil:
		response.Error(w, http.StatusInternalServerError, "Failed to delete product")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleCookingTip suggests a dish for the product. A failed suggestion is an
// empty tip, not an error.
func (h *CatalogHandler) HandleCookingTip(w http.ResponseWriter, r *http.Request) {
	lang, ok := language(w, r)
	if !ok {
		return
	}

	product, ok := h.lookup(w, r.PathValue("id"))
	if !ok {
		return
	}

	tip := ""
	switch {
	case product.CookingSuggestion != nil && product.CookingSuggestion.Get(lang) != "":
		tip = product.CookingSuggestion.Get(lang)
	case h.tips != nil:
		tip = h.tips.CookingTip(r.Context(), *product, lang)
	}

	response.OK(w, TipResponse{ProductID: product.ID, Tip: tip})
}

func (h *CatalogHandler) lookup(w http.ResponseWriter, id string) (*models.Product, bool) {
	product, err := h.repo.GetByID(id)
	if errors.Is(err, models.ErrProductNotFound) {
		response.Error(w, http.StatusNotFound, "Product not found")
		return nil, false
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to retrieve product")
		return nil, false
	}
	return product, true
}

func (h *CatalogHandler) save(w http.ResponseWriter, r *http.Request, input models.Product, status int) {
	if !input.Name.IsComplete() || !input.Description.IsComplete() || !input.Category.IsComplete() {
		response.Error(w, http.StatusBadRequest, "Name, description and category need vi, en and zh")
		return
	}

	saved, err := h.repo.Upsert(r.Context(), input)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to save product")
		return
	}
	response.JSON(w, status, saved)
}

func cards(products []models.Product, lang models.Language) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = Product{
			ID:          p.ID,
			Name:        p.Name.Get(lang),
			Category:    p.Category.Get(lang),
			Price:       p.Price,
			PriceLabel:  models.FormatDisplayPrice(p.Price, lang, false),
			Image:       p.Image,
			Rating:      p.Rating,
			Reviews:     p.Reviews,
			IsShelfItem: p.IsShelfItem,
			Stock:       p.Stock,
		}
	}
	return out
}

func language(w http.ResponseWriter, r *http.Request) (models.Language, bool) {
	lang, err := models.ParseLanguage(r.URL.Query().Get("lang"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return lang, true
}
