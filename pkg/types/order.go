package types

import "time"

// OrderStatus is a Bybit v5 order status as reported by the order history endpoint.
type OrderStatus string

// Order statuses the bot cares about. Anything not listed here is treated
// as still resting and keeps being polled.
const (
	StatusNew             OrderStatus = "New"
	StatusPartiallyFilled OrderStatus = "PartiallyFilled"
	StatusFilled          OrderStatus = "Filled"
	StatusCancelled       OrderStatus = "Cancelled"
	StatusRejected        OrderStatus = "Rejected"

	// Bybit has reported a cancel that interrupted a partial fill under
	// both of these names, depending on API generation.
	StatusPartiallyCanceled       OrderStatus = "PartiallyCanceled"
	StatusPartiallyFilledCanceled OrderStatus = "PartiallyFilledCanceled"
)

// IsTerminal reports whether the order can no longer change state.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case StatusFilled, StatusCancelled, StatusRejected,
		StatusPartiallyCanceled, StatusPartiallyFilledCanceled:
		return true
	}

	return false
}

// OrderRecord is the final snapshot of an order as returned by the exchange.
// Quantity and value fields are kept as the exchange's decimal strings so the
// journal and the console summary show exactly what Bybit reported.
type OrderRecord struct {
	Symbol       string
	OrderID      string
	OrderLinkID  string
	Status       OrderStatus
	Side         string
	OrderType    string
	Qty          string
	Price        string
	CumExecQty   string
	CumExecValue string
	TimeInForce  string
	RecordedAt   time.Time
}
