// Package checkout builds orders from the cart or from custom delivery
// requests, stores them and notifies the shop.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lankamart/storefront/models"
)

const (
	GuestLabel  = "Khách vãng lai"
	CustomLabel = "Khách đặt riêng"

	notifyTimeout = 10 * time.Second
)

// ErrEmptyCart is returned when checking out an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

type Orders interface {
	Prepend(ctx context.Context, order models.Order) error
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus, check func(from, to models.OrderStatus) error) (models.Order, error)
}

type Notifier interface {
	Notify(ctx context.Context, order models.Order) error
}

type Session interface {
	Current() *models.UserAccount
}

// CartCheckout is the checkout form.
type CartCheckout struct {
	Contact  string           `json:"contact"`
	Location *models.Location `json:"location,omitempty"`
}

// CustomRequest is the "source and deliver this for me" form.
type CustomRequest struct {
	Area     string           `json:"area"`
	Contact  string           `json:"contact"`
	Needs    string           `json:"needs"`
	Location *models.Location `json:"location,omitempty"`
}

type Service struct {
	orders   Orders
	cart     *Cart
	session  Session
	notifier Notifier
	policy   TransitionPolicy
	log      *zap.Logger

	ids *models.IDGenerator
	now func() time.Time
	wg  sync.WaitGroup
}

type Option func(*Service)

func WithPolicy(p TransitionPolicy) Option {
	return func(s *Service) { s.policy = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
		s.ids.Now = now
	}
}

// NewService wires the lifecycle. notifier may be nil.
func NewService(orders Orders, cart *Cart, session Session, notifier Notifier, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		orders:   orders,
		cart:     cart,
		session:  session,
		notifier: notifier,
		policy:   Permissive,
		log:      log,
		ids:      &models.IDGenerator{Now: time.Now},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Cart() *Cart {
	return s.cart
}

// PlaceCartOrder turns the cart into a pending order and empties the cart.
func (s *Service) PlaceCartOrder(ctx context.Context, req CartCheckout) (models.Order, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	user := s.session.Current()
	// a blank contact counts as missing
	name := strings.TrimSpace(req.Contact)
	if name == "" && user != nil {
		name = user.FullName
	}
	if name == "" {
		name = GuestLabel
	}

	order := s.newOrder(models.OrderTypeCart, user, req.Location)
	order.CustomerName = name
	order.Contact = req.Contact
	order.Items = items
	order.Total = Total(items)

	if err := s.place(ctx, order); err != nil {
		return models.Order{}, err
	}
	s.cart.Clear()
	return order, nil
}

// PlaceCustomOrder records a custom delivery request: no items, total 0.
func (s *Service) PlaceCustomOrder(ctx context.Context, req CustomRequest) (models.Order, error) {
	name := strings.TrimSpace(req.Contact)
	if name == "" {
		name = CustomLabel
	}

	order := s.newOrder(models.OrderTypeCustom, s.session.Current(), req.Location)
	order.CustomerName = name
	order.Contact = req.Contact
	order.Items = []models.CartItem{}
	order.Total = decimal.Zero
	order.Address = req.Area
	order.Note = req.Needs

	if err := s.place(ctx, order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// SetStatus changes an order's status as far as the transition policy allows.
func (s *Service) SetStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	return s.orders.UpdateStatus(ctx, id, status, s.policy)
}

// Close waits for outstanding notifications.
func (s *Service) Close() {
	s.wg.Wait()
}

func (s *Service) newOrder(kind models.OrderType, user *models.UserAccount, loc *models.Location) models.Order {
	order := models.Order{
		ID:        s.ids.Next("ORD"),
		Status:    models.StatusPending,
		CreatedAt: s.now().UTC(),
		Type:      kind,
	}
	if user != nil {
		order.UserID = user.ID
	}
	if loc != nil {
		l := *loc
		order.Location = &l
	}
	return order
}

// place stores the order, then notifies in the background. A failed
// notification is logged only.
func (s *Service) place(ctx context.Context, order models.Order) error {
	if err := s.orders.Prepend(ctx, order); err != nil {
		return fmt.Errorf("store order %s: %w", order.ID, err)
	}
	s.log.Info("order placed",
		zap.String("id", order.ID),
		zap.String("type", string(order.Type)),
		zap.String("total", order.Total.String()))

	if s.notifier == nil {
		return nil
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.Notify(ctx, order); err != nil {
			s.log.Warn("order notification failed", zap.String("id", order.ID), zap.Error(err))
		}
	}()
	return nil
}
