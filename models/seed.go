package models

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed seed/catalog.yaml
var seedCatalog []byte

type catalogSeed struct {
	Categories []Category `yaml:"categories"`
	Products   []Product  `yaml:"products"`
}

func loadSeed() catalogSeed {
	var seed catalogSeed
	if err := yaml.Unmarshal(seedCatalog, &seed); err != nil {
		panic(fmt.Sprintf("models: bad seed catalog: %v", err))
	}
	return seed
}

// SeedProducts is the catalog used when no catalog has been stored yet.
func SeedProducts() []Product {
	return loadSeed().Products
}

// SeedCategories are the default shelf categories.
func SeedCategories() []Category {
	return loadSeed().Categories
}

func DefaultPaymentInfo() PaymentInfo {
	return PaymentInfo{
		BankName:      "Vietcombank",
		AccountName:   "NGUYEN VAN A",
		AccountNumber: "123456789",
		Instruction:   "Nội dung: Tên + SĐT đặt hàng",
	}
}
