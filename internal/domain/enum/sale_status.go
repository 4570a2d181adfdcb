package enum

// SaleStatus represents the lifecycle state of a sale. Values match the
// backing-store enum literals.
type SaleStatus string

const (
	SaleStatusOpen      SaleStatus = "aberta"
	SaleStatusFinalized SaleStatus = "finalizada"
	SaleStatusCancelled SaleStatus = "cancelada"
)

func (s SaleStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is one of the known sale statuses.
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusOpen, SaleStatusFinalized, SaleStatusCancelled:
		return true
	}
	return false
}
