package enum

// SaleType represents how a product is sold: by unit or by weight.
type SaleType string

const (
	SaleTypeUnit   SaleType = "unidade"
	SaleTypeWeight SaleType = "peso"
	// SaleTypeHybrid products can be sold either way.
	SaleTypeHybrid SaleType = "hibrido"
)

func (t SaleType) String() string {
	return string(t)
}

// Unit returns the measurement unit label printed on receipts.
func (t SaleType) Unit() string {
	if t == SaleTypeWeight {
		return "KG"
	}
	return "UN"
}
