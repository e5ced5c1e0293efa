package models

// Product is a catalog entry. Shelf items are only browsable inside their
// shelf category; the rest are featured on the home surface.
type Product struct {
	ID                string           `json:"id" yaml:"id"`
	Name              LocalizedString  `json:"name" yaml:"name"`
	Description       LocalizedString  `json:"description" yaml:"description"`
	CookingSuggestion *LocalizedString `json:"cookingSuggestion,omitempty" yaml:"cookingSuggestion,omitempty"`
	Category          LocalizedString  `json:"category" yaml:"category"`
	Price             Price            `json:"price" yaml:"price"`
	Image             string           `json:"image" yaml:"image"`
	Rating            float64          `json:"rating" yaml:"rating"`
	Reviews           int              `json:"reviews" yaml:"reviews"`
	IsShelfItem       bool             `json:"isShelfItem,omitempty" yaml:"isShelfItem,omitempty"`
	Stock             *int             `json:"stock,omitempty" yaml:"stock,omitempty"`
	VendorID          string           `json:"vendorId,omitempty" yaml:"vendorId,omitempty"`
}
