package checkout

import (
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/lankamart/storefront/models"
)

// Cart holds the shopper's lines. A line never sits at quantity 0: it is
// removed instead.
type Cart struct {
	mu    sync.Mutex
	items []models.CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// Add puts one more unit of p in the cart.
func (c *Cart) Add(p models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, models.CartItem{Product: p, Quantity: 1})
}

// Decrement takes one unit of the product out, dropping the line at zero.
// It reports whether the product was in the cart.
func (c *Cart) Decrement(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := slices.IndexFunc(c.items, func(item models.CartItem) bool { return item.ID == id })
	if i < 0 {
		return false
	}
	c.items[i].Quantity--
	if c.items[i].Quantity <= 0 {
		c.items = slices.Delete(c.items, i, i+1)
	}
	return true
}

func (c *Cart) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := slices.IndexFunc(c.items, func(item models.CartItem) bool { return item.ID == id })
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a snapshot of the cart lines.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Total sums fixed price × quantity; display-priced lines count as 0.
func (c *Cart) Total() decimal.Decimal {
	return Total(c.Items())
}

func Total(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
