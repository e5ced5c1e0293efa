package cart

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/lankamart/storefront/app/response"
	"github.com/lankamart/storefront/models"
)

type Response struct {
	Items      []models.CartItem `json:"items"`
	Total      decimal.Decimal   `json:"total"`
	TotalLabel models.PriceLabel `json:"totalLabel"`
}

type CartProvider interface {
	Add(p models.Product)
	Decrement(id string) bool
	Remove(id string) bool
	Items() []models.CartItem
}

type ProductLookup interface {
	GetByID(id string) (*models.Product, error)
}

type CartHandler struct {
	cart     CartProvider
	products ProductLookup
}

func NewCartHandler(c CartProvider, products ProductLookup) *CartHandler {
	return &CartHandler{cart: c, products: products}
}

func (h *CartHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.write(w)
}

// HandleAdd adds one unit of {"productId": "..."}.
func (h *CartHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ProductID string `json:"productId"`
	}
	if err := response.Decode(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.ProductID == "" {
		response.Error(w, http.StatusBadRequest, "Missing productId")
		return
	}

	product, err := h.products.GetByID(input.ProductID)
	if errors.Is(err, models.ErrProductNotFound) {
		response.Error(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	h.cart.Add(*product)
	h.write(w)
}

func (h *CartHandler) HandleDecrement(w http.ResponseWriter, r *http.Request) {
	if !h.cart.Decrement(r.PathValue("id")) {
		response.Error(w, http.StatusNotFound, "Product not in cart")
		return
	}
	h.write(w)
}

func (h *CartHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	if !h.cart.Remove(r.PathValue("id")) {
		response.Error(w, http.StatusNotFound, "Product not in cart")
		return
	}
	h.write(w)
}

func (h *CartHandler) write(w http.ResponseWriter) {
	items := h.cart.Items()
	if items == nil {
		items = []models.CartItem{}
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	response.OK(w, Response{
		Items:      items,
		Total:      total,
		TotalLabel: models.FormatDisplayPrice(models.FixedPrice(total), models.DefaultLanguage, true),
	})
}
