package models

// Category is a shelf category. Products reference it by its localized name,
// not by ID.
type Category struct {
	ID    string          `json:"id" yaml:"id"`
	Name  LocalizedString `json:"name" yaml:"name"`
	Icon  string          `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color string          `json:"color,omitempty" yaml:"color,omitempty"`
}
