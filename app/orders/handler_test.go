package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lankamart/storefront/checkout"
	"github.com/lankamart/storefront/models"
)

// --- Mocks ---

type MockOrderService struct {
	Err          error
	LastCart     *checkout.CartCheckout
	LastCustom   *checkout.CustomRequest
	LastStatusID string
	LastStatus   models.OrderStatus
}

func (m *MockOrderService) PlaceCartOrder(_ context.Context, req checkout.CartCheckout) (models.Order, error) {
	m.LastCart = &req
	if m.Err != nil {
		return models.Order{}, m.Err
	}
	return models.Order{ID: "ORD-1", CustomerName: req.Contact, Type: models.OrderTypeCart, Status: models.StatusPending}, nil
}

func (m *MockOrderService) PlaceCustomOrder(_ context.Context, req checkout.CustomRequest) (models.Order, error) {
	m.LastCustom = &req
	if m.Err != nil {
		return models.Order{}, m.Err
	}
	return models.Order{ID: "ORD-2", Address: req.Area, Note: req.Needs, Type: models.OrderTypeCustom, Status: models.StatusPending}, nil
}

func (m *MockOrderService) SetStatus(_ context.Context, id string, status models.OrderStatus) (models.Order, error) {
	m.LastStatusID = id
	m.LastStatus = status
	if m.Err != nil {
		return models.Order{}, m.Err
	}
	return models.Order{ID: id, Status: status}, nil
}

type MockOrderList []models.Order

func (m MockOrderList) GetAllOrders() []models.Order { return m }

type staticPayment models.PaymentInfo

func (p staticPayment) Payment() models.PaymentInfo { return models.PaymentInfo(p) }

func newHandler(svc *MockOrderService) *OrderHandler {
	list := MockOrderList{{ID: "ORD-2"}, {ID: "ORD-1"}}
	stats := func() checkout.Stats {
		return checkout.Stats{Revenue: decimal.NewFromInt(4500), OrderCount: 2, UserCount: 1, ProductCount: 9}
	}
	return NewOrderHandler(svc, list, staticPayment{BankName: "Vietcombank"}, stats)
}

// --- Tests ---

func TestHandlePlaceCart(t *testing.T) {
	testCases := []struct {
		name               string
		body               string
		svc                *MockOrderService
		expectedStatusCode int
		expectedError      string
	}{
		{name: "Success", body: `{"contact":"0901 234 567","location":{"lat":6.9,"lng":79.8}}`, svc: &MockOrderService{}, expectedStatusCode: http.StatusCreated},
		{name: "Empty cart", body: `{}`, svc: &MockOrderService{Err: checkout.ErrEmptyCart}, expectedStatusCode: http.StatusBadRequest, expectedError: "Cart is empty"},
		{name: "Storage failure", body: `{}`, svc: &MockOrderService{Err: errors.New("disk full")}, expectedStatusCode: http.StatusInternalServerError, expectedError: "Failed to place order"},
		{name: "Invalid JSON", body: `{`, svc: &MockOrderService{}, expectedStatusCode: http.StatusBadRequest, expectedError: "Invalid JSON body"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newHandler(tc.svc)
			rec := httptest.NewRecorder()

			handler.HandlePlaceCart(rec, httptest.NewRequest("POST", "/orders/cart", strings.NewReader(tc.body)))

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedError != "" {
				var errResp map[string]string
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
				assert.Equal(t, tc.expectedError, errResp["error"])
				return
			}
			var resp PlacedResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "ORD-1", resp.Order.ID)
			assert.Equal(t, "Vietcombank", resp.Payment.BankName)
			require.NotNil(t, tc.svc.LastCart.Location)
			assert.Equal(t, 6.9, tc.svc.LastCart.Location.Lat)
		})
	}
}

func TestHandlePlaceCustom(t *testing.T) {
	svc := &MockOrderService{}
	handler := newHandler(svc)

	rec := httptest.NewRecorder()
	handler.HandlePlaceCustom(rec, httptest.NewRequest("POST", "/orders/custom",
		strings.NewReader(`{"area":"Colombo 03","contact":"Lan","needs":"2kg cua"}`)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp PlacedResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, models.OrderTypeCustom, resp.Order.Type)
	assert.Equal(t, "Colombo 03", resp.Order.Address)
	assert.Equal(t, "2kg cua", svc.LastCustom.Needs)

	rec = httptest.NewRecorder()
	handler.HandlePlaceCustom(rec, httptest.NewRequest("POST", "/orders/custom", strings.NewReader(`{"area":"Colombo"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSetStatus(t *testing.T) {
	testCases := []struct {
		name               string
		body               string
		svc                *MockOrderService
		expectedStatusCode int
	}{
		{name: "Success", body: `{"status":"shipped"}`, svc: &MockOrderService{}, expectedStatusCode: http.StatusOK},
		{name: "Unknown status", body: `{"status":"lost"}`, svc: &MockOrderService{}, expectedStatusCode: http.StatusBadRequest},
		{name: "Unknown order", body: `{"status":"shipped"}`, svc: &MockOrderService{Err: models.ErrOrderNotFound}, expectedStatusCode: http.StatusNotFound},
		{
			name:               "Refused transition",
			body:               `{"status":"delivered"}`,
			svc:                &MockOrderService{Err: fmt.Errorf("%w: pending to delivered", checkout.ErrIllegalTransition)},
			expectedStatusCode: http.StatusConflict,
		},
		{name: "Storage failure", body: `{"status":"shipped"}`, svc: &MockOrderService{Err: errors.New("disk full")}, expectedStatusCode: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newHandler(tc.svc)
			req := httptest.NewRequest("PATCH", "/orders/ORD-1/status", strings.NewReader(tc.body))
			req.SetPathValue("id", "ORD-1")
			rec := httptest.NewRecorder()

			handler.HandleSetStatus(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedStatusCode != http.StatusBadRequest {
				assert.Equal(t, "ORD-1", tc.svc.LastStatusID)
			}
		})
	}
}

func TestHandleListAndStats(t *testing.T) {
	handler := newHandler(&MockOrderService{})

	rec := httptest.NewRecorder()
	handler.HandleList(rec, httptest.NewRequest("GET", "/orders", nil))
	var list []models.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, "ORD-2", list[0].ID)

	rec = httptest.NewRecorder()
	handler.HandleStats(rec, httptest.NewRequest("GET", "/orders/stats", nil))
	var stats checkout.Stats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.True(t, stats.Revenue.Equal(decimal.NewFromInt(4500)))
	assert.Equal(t, 9, stats.ProductCount)
}
