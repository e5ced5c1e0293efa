// Package app exposes the storefront as a JSON HTTP API.
package app

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/lankamart/storefront/app/accounts"
	"github.com/lankamart/storefront/app/cart"
	"github.com/lankamart/storefront/app/catalog"
	"github.com/lankamart/storefront/app/categories"
	"github.com/lankamart/storefront/app/currency"
	"github.com/lankamart/storefront/app/orders"
	"github.com/lankamart/storefront/app/response"
	"github.com/lankamart/storefront/app/search"
	"github.com/lankamart/storefront/app/settings"
	"github.com/lankamart/storefront/models"
)

type Handlers struct {
	Catalog    *catalog.CatalogHandler
	Categories *categories.CategoryHandler
	Cart       *cart.CartHandler
	Orders     *orders.OrderHandler
	Accounts   *accounts.AccountHandler
	Search     *search.SearchHandler
	Currency   *currency.ConverterHandler
	Settings   *settings.SettingsHandler
}

// RoleChecker reports the role of the signed-in session.
type RoleChecker interface {
	HasRole(role models.Role) bool
}

// NewRouter registers every route. Admin routes answer 403 unless the
// current session is an administrator.
func NewRouter(h Handlers, roles RoleChecker, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	admin := func(next http.HandlerFunc) http.Handler {
		return RequireRole(roles, models.RoleAdmin, next)
	}

	mux.HandleFunc("GET /catalog", h.Catalog.HandleGet)
	mux.HandleFunc("GET /catalog/featured", h.Catalog.HandleFeatured)
	mux.HandleFunc("GET /catalog/shelf", h.Catalog.HandleShelf)
	mux.HandleFunc("GET /catalog/{id}", h.Catalog.HandleGetProduct)
	mux.HandleFunc("GET /catalog/{id}/cooking-tip", h.Catalog.HandleCookingTip)
	mux.Handle("POST /catalog", admin(h.Catalog.HandleCreate))
	mux.Handle("PUT /catalog/{id}", admin(h.Catalog.HandleUpdate))
	mux.Handle("DELETE /catalog/{id}", admin(h.Catalog.HandleDelete))

	mux.HandleFunc("GET /categories", h.Categories.HandleGetAll)
	mux.Handle("POST /categories", admin(h.Categories.HandleCreate))
	mux.Handle("PUT /categories/{id}", admin(h.Categories.HandleUpdate))
	mux.Handle("DELETE /categories/{id}", admin(h.Categories.HandleDelete))

	mux.HandleFunc("GET /cart", h.Cart.HandleGet)
	mux.HandleFunc("POST /cart", h.Cart.HandleAdd)
	mux.HandleFunc("POST /cart/{id}/decrement", h.Cart.HandleDecrement)
	mux.HandleFunc("DELETE /cart/{id}", h.Cart.HandleRemove)

	mux.HandleFunc("POST /orders/cart", h.Orders.HandlePlaceCart)
	mux.HandleFunc("POST /orders/custom", h.Orders.HandlePlaceCustom)
	mux.Handle("GET /orders", admin(h.Orders.HandleList))
	mux.Handle("GET /orders/stats", admin(h.Orders.HandleStats))
	mux.Handle("PATCH /orders/{id}/status", admin(h.Orders.HandleSetStatus))

	mux.HandleFunc("POST /auth/login", h.Accounts.HandleLogin)
	mux.HandleFunc("POST /auth/register", h.Accounts.HandleRegister)
	mux.HandleFunc("POST /auth/logout", h.Accounts.HandleLogout)
	mux.HandleFunc("GET /auth/session", h.Accounts.HandleSession)
	mux.Handle("GET /accounts", admin(h.Accounts.HandleList))
	mux.Handle("PATCH /accounts/{id}/role", admin(h.Accounts.HandleSetRole))

	mux.HandleFunc("GET /search", h.Search.HandleSearch)
	mux.HandleFunc("POST /search/type", h.Search.HandleType)
	mux.HandleFunc("GET /search/state", h.Search.HandleState)
	mux.HandleFunc("GET /search/suggestions", h.Search.HandleSuggestions)

	mux.HandleFunc("GET /currency/convert", h.Currency.HandleConvert)

	mux.HandleFunc("GET /settings/payment", h.Settings.HandleGetPayment)
	mux.Handle("PUT /settings/payment", admin(h.Settings.HandlePutPayment))
	mux.Handle("GET /settings/notification", admin(h.Settings.HandleGetNotification))
	mux.Handle("PUT /settings/notification", admin(h.Settings.HandlePutNotification))

	return LogRequests(log, mux)
}

func RequireRole(roles RoleChecker, role models.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !roles.HasRole(role) {
			response.Error(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// LogRequests logs method, path, status and duration of every request.
func LogRequests(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
