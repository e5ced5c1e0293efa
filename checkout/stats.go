package checkout

import "github.com/shopspring/decimal"

// Stats is the admin dashboard summary.
type Stats struct {
	Revenue      decimal.Decimal `json:"revenue"`
	OrderCount   int             `json:"orderCount"`
	UserCount    int             `json:"userCount"`
	ProductCount int             `json:"productCount"`
}

type Counter interface {
	Count() int
}

type RevenueSource interface {
	Counter
	DeliveredRevenue() decimal.Decimal
}

// ComputeStats counts revenue from delivered orders only.
func ComputeStats(orders RevenueSource, accounts, products Counter) Stats {
	return Stats{
		Revenue:      orders.DeliveredRevenue(),
		OrderCount:   orders.Count(),
		UserCount:    accounts.Count(),
		ProductCount: products.Count(),
	}
}
