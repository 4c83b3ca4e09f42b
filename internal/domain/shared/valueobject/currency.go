package valueobject

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	USD Currency = "USD" // US Dollar (default)
	EUR Currency = "EUR" // Euro
	COP Currency = "COP" // Colombian Peso
	GTQ Currency = "GTQ" // Guatemalan Quetzal
	MXN Currency = "MXN" // Mexican Peso
)

// DefaultCurrency is the default currency for the system
const DefaultCurrency = USD

// IsValid checks whether the currency is one the ledger accepts
func (c Currency) IsValid() bool {
	switch c {
	case USD, EUR, COP, GTQ, MXN:
		return true
	}
	return false
}

// String returns the currency code
func (c Currency) String() string {
	return string(c)
}
