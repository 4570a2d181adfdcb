package enum

// PaymentMethod represents how a sale was paid. Values match the
// backing-store enum literals.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "dinheiro"
	PaymentDebit  PaymentMethod = "debito"
	PaymentCredit PaymentMethod = "credito"
	PaymentPix    PaymentMethod = "pix"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid reports whether the value is one of the known payment methods.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentDebit, PaymentCredit, PaymentPix:
		return true
	}
	return false
}
