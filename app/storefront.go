package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/lankamart/storefront/app/accounts"
	"github.com/lankamart/storefront/app/cart"
	"github.com/lankamart/storefront/app/catalog"
	"github.com/lankamart/storefront/app/categories"
	"github.com/lankamart/storefront/app/currency"
	"github.com/lankamart/storefront/app/orders"
	appsearch "github.com/lankamart/storefront/app/search"
	"github.com/lankamart/storefront/app/settings"
	"github.com/lankamart/storefront/auth"
	"github.com/lankamart/storefront/checkout"
	"github.com/lankamart/storefront/config"
	conv "github.com/lankamart/storefront/currency"
	"github.com/lankamart/storefront/models"
	"github.com/lankamart/storefront/notify"
	"github.com/lankamart/storefront/search"
	"github.com/lankamart/storefront/store"
)

// Storefront is the assembled application.
type Storefront struct {
	Handler http.Handler

	store    *store.Store
	engine   *search.Engine
	checkout *checkout.Service
	log      *zap.Logger
}

// OpenBackend picks the document backend named by cfg.Driver.
func OpenBackend(cfg config.Config) (store.Backend, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return store.OpenPostgres(cfg.Postgres.DSN())
	case config.DriverSQLite:
		return store.OpenSQLite(cfg.SQLitePath)
	case config.DriverMemory:
		return store.NewMemoryBackend(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// New loads every persisted collection from backend and wires the services
// and routes. The generative client is created only when an API key is set.
func New(ctx context.Context, cfg config.Config, backend store.Backend, log *zap.Logger) (*Storefront, error) {
	st := store.New(backend, log.Named("store"))

	products := models.NewProductsRepository(ctx, st)
	cats := models.NewCategoriesRepository(ctx, st, products)
	orderRepo := models.NewOrdersRepository(ctx, st)
	accountRepo := models.NewAccountsRepository(ctx, st)
	sessions := models.NewSessionRepository(ctx, st)
	settingsRepo := models.NewSettingsRepository(ctx, st, models.NotificationConfig{
		BotToken:  cfg.TelegramBotToken,
		ChatID:    cfg.TelegramChatID,
		IsEnabled: cfg.TelegramEnabled(),
	})

	var (
		client  *genai.Client
		matcher search.Matcher
	)
	if cfg.GeminiAPIKey != "" {
		var err error
		client, err = search.NewGenAIClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("genai client: %w", err)
		}
		matcher = search.NewGenAIMatcher(client, cfg.GeminiModel)
	} else {
		log.Warn("GEMINI_API_KEY not set, search runs on local matches only")
	}
	engine := search.NewEngine(products, matcher, log.Named("search"), search.WithDelay(cfg.SearchDebounce))
	assistant := search.NewAssistant(client, cfg.GeminiModel, log.Named("assistant"))

	manager := auth.NewManager(accountRepo, sessions, log.Named("auth"), auth.WithAdmin(auth.Credentials{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
	}))

	opts := []checkout.Option{}
	if cfg.StrictTransitions {
		opts = append(opts, checkout.WithPolicy(checkout.Guarded))
	}
	shoppingCart := checkout.NewCart()
	service := checkout.NewService(orderRepo, shoppingCart, sessions, notify.NewTelegram(settingsRepo, nil), log.Named("checkout"), opts...)

	stats := func() checkout.Stats {
		return checkout.ComputeStats(orderRepo, accountRepo, products)
	}

	handlers := Handlers{
		Catalog:    catalog.NewCatalogHandler(products, assistant),
		Categories: categories.NewCategoryHandler(cats),
		Cart:       cart.NewCartHandler(shoppingCart, products),
		Orders:     orders.NewOrderHandler(service, orderRepo, settingsRepo, stats),
		Accounts:   accounts.NewAccountHandler(manager),
		Search:     appsearch.NewSearchHandler(engine, assistant),
		Currency:   currency.NewConverterHandler(conv.Default),
		Settings:   settings.NewSettingsHandler(settingsRepo),
	}

	return &Storefront{
		Handler:  NewRouter(handlers, manager, log.Named("http")),
		store:    st,
		engine:   engine,
		checkout: service,
		log:      log,
	}, nil
}

// Close stops background search lookups, waits for pending notifications and
// closes the store.
func (s *Storefront) Close() error {
	s.engine.Close()
	s.checkout.Close()
	return s.store.Close()
}
