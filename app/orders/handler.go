package orders

import (
	"context"
	"errors"
	"net/http"

	"github.com/lankamart/storefront/app/response"
	"github.com/lankamart/storefront/checkout"
	"github.com/lankamart/storefront/models"
)

// PlacedResponse is returned after checkout, with the bank details the
// customer pays to.
type PlacedResponse struct {
	Order   models.Order       `json:"order"`
	Payment models.PaymentInfo `json:"payment"`
}

type OrderService interface {
	PlaceCartOrder(ctx context.Context, req checkout.CartCheckout) (models.Order, error)
	PlaceCustomOrder(ctx context.Context, req checkout.CustomRequest) (models.Order, error)
	SetStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error)
}

type OrderLister interface {
	GetAllOrders() []models.Order
}

type PaymentProvider interface {
	Payment() models.PaymentInfo
}

type OrderHandler struct {
	service OrderService
	orders  OrderLister
	payment PaymentProvider
	stats   func() checkout.Stats
}

func NewOrderHandler(service OrderService, orders OrderLister, payment PaymentProvider, stats func() checkout.Stats) *OrderHandler {
	return &OrderHandler{
		service: service,
		orders:  orders,
		payment: payment,
		stats:   stats,
	}
}

func (h *OrderHandler) HandlePlaceCart(w http.ResponseWriter, r *http.Request) {
	var input checkout.CartCheckout
	if err := response.Decode(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	order, err := h.service.PlaceCartOrder(r.Context(), input)
	if errors.Is(err, checkout.ErrEmptyCart) {
		response.Error(w, http.StatusBadRequest, "Cart is empty")
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to place order")
		return
	}

	response.JSON(w, http.StatusCreated, PlacedResponse{Order: order, Payment: h.payment.Payment()})
}

func (h *OrderHandler) HandlePlaceCustom(w http.ResponseWriter, r *http.Request) {
	var input checkout.CustomRequest
	if err := response.Decode(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.Needs == "" {
		response.Error(w, http.StatusBadRequest, "Missing needs")
		return
	}

	order, err := h.service.PlaceCustomOrder(r.Context(), input)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to place order")
		return
	}

	response.JSON(w, http.StatusCreated, PlacedResponse{Order: order, Payment: h.payment.Payment()})
}

// HandleList returns every order, newest first.
func (h *OrderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.orders.GetAllOrders())
}

func (h *OrderHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Status string `json:"status"`
	}
	if err := response.Decode(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	status, err := models.ParseOrderStatus(input.Status)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.service.SetStatus(r.Context(), r.PathValue("id"), status)
	switch {
	case errors.Is(err, models.ErrOrderNotFound):
		response.Error(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, checkout.ErrIllegalTransition):
		response.Error(w, http.StatusConflict, err.Error())
	case err != nil:
		response.Error(w, http.StatusInternalServerError, "Failed to update order")
	default:
		response.OK(w, order)
	}
}

func (h *OrderHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.stats())
}
