package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/lankamart/storefront/currency"
)

type priceKind uint8

const (
	priceFixed priceKind = iota
	priceDisplay
)

// Price is either a fixed amount in the base currency or a localized display
// text such as "market price". The zero value is a fixed price of 0.
type Price struct {
	kind   priceKind
	amount decimal.Decimal
	text   LocalizedString
}

func FixedPrice(amount decimal.Decimal) Price {
	return Price{kind: priceFixed, amount: amount}
}

func DisplayPrice(text LocalizedString) Price {
	return Price{kind: priceDisplay, text: text}
}

func (p Price) IsFixed() bool { return p.kind == priceFixed }

// Amount reports the fixed amount; display prices report false.
func (p Price) Amount() (decimal.Decimal, bool) {
	if p.kind != priceFixed {
		return decimal.Zero, false
	}
	return p.amount, true
}

// Text reports the localized display text; fixed prices report false.
func (p Price) Text() (LocalizedString, bool) {
	if p.kind != priceDisplay {
		return LocalizedString{}, false
	}
	return p.text, true
}

// Numeric is the amount counted towards cart totals: the fixed amount, or 0.
func (p Price) Numeric() decimal.Decimal {
	if p.kind != priceFixed {
		return decimal.Zero
	}
	return p.amount
}

func (p Price) Equal(o Price) bool {
	if p.kind != o.kind {
		return false
	}
	if p.kind == priceFixed {
		return p.amount.Equal(o.amount)
	}
	return p.text == o.text
}

// MarshalJSON writes a bare number for fixed prices and a localized object
// for display prices.
func (p Price) MarshalJSON() ([]byte, error) {
	if p.kind == priceDisplay {
		return json.Marshal(p.text)
	}
	return []byte(p.amount.String()), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var text LocalizedString
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("display price: %w", err)
		}
		*p = DisplayPrice(text)
		return nil
	}

	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("fixed price: %w", err)
	}
	*p = FixedPrice(amount)
	return nil
}

func (p *Price) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		var text LocalizedString
		if err := node.Decode(&text); err != nil {
			return fmt.Errorf("display price: %w", err)
		}
		*p = DisplayPrice(text)
		return nil
	}

	amount, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("fixed price: %w", err)
	}
	*p = FixedPrice(amount)
	return nil
}

// PriceLabel is a price rendered for display.
type PriceLabel struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary,omitempty"`
}

// FormatDisplayPrice renders fixed prices in LKR, optionally with the VND
// equivalent as Secondary. Display prices render their text for lang.
func FormatDisplayPrice(p Price, lang Language, includeSecondary bool) PriceLabel {
	if text, ok := p.Text(); ok {
		return PriceLabel{Primary: text.Get(lang)}
	}

	label := PriceLabel{Primary: currency.FormatSource(p.amount) + " " + currency.Source}
	if includeSecondary {
		label.Secondary = "≈ " + currency.FormatTarget(currency.Default.Forward(p.amount)) + " " + currency.Target
	}
	return label
}
