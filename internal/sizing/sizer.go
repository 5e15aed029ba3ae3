package sizing

import (
	"fmt"
	"strings"

	"github.com/mselser95/bybit-sniper/pkg/bybit"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// defaultIncrement is assumed when the exchange omits a filter field,
// matching the tightest precision Bybit uses for spot symbols.
const defaultIncrement = "0.000001"

// OrderRequest is a fully sized limit sell, immutable once built.
type OrderRequest struct {
	Symbol   string
	Qty      decimal.Decimal
	Price    decimal.Decimal
	Market   decimal.Decimal // reference price the target was derived from
	TickSize decimal.Decimal
	QtyStep  decimal.Decimal
}

// Sizer derives order price and quantity from the market price and the
// symbol's exchange-mandated precision filters.
type Sizer struct {
	logger *zap.Logger
}

// New creates a new Sizer.
func New(logger *zap.Logger) *Sizer {
	return &Sizer{logger: logger}
}

// BuildOrder computes the limit sell request: the market price discounted by
// offsetPercent, and the plan quantity, both truncated toward zero to the
// instrument's tick/step precision. Truncation never rounds up, so the order
// can never ask for a price above the computed target or a quantity above the
// available balance.
func (s *Sizer) BuildOrder(
	inst *bybit.Instrument,
	marketPrice decimal.Decimal,
	offsetPercent decimal.Decimal,
	quantity decimal.Decimal,
) (*OrderRequest, error) {
	symbol := inst.Symbol

	tickSize, err := parseIncrement(inst.PriceFilter.TickSize)
	if err != nil {
		return nil, fmt.Errorf("symbol %s tickSize: %w", symbol, err)
	}

	qtyStep, err := parseIncrement(inst.LotSizeFilter.QtyIncrement())
	if err != nil {
		return nil, fmt.Errorf("symbol %s qtyStep: %w", symbol, err)
	}

	// target = P - P*O/100; Shift(-2) divides by 100 exactly.
	raw := marketPrice.Sub(marketPrice.Mul(offsetPercent).Shift(-2))

	tickDecimals := DecimalPlaces(tickSize)
	stepDecimals := DecimalPlaces(qtyStep)

	price := raw.Truncate(tickDecimals)
	qty := quantity.Truncate(stepDecimals)

	s.logger.Info("order-sized",
		zap.String("symbol", symbol),
		zap.String("market-price", marketPrice.String()),
		zap.String("target-price", price.String()),
		zap.String("qty", qty.String()),
		zap.Int32("tick-decimals", tickDecimals),
		zap.Int32("step-decimals", stepDecimals))

	return &OrderRequest{
		Symbol:   symbol,
		Qty:      qty,
		Price:    price,
		Market:   marketPrice,
		TickSize: tickSize,
		QtyStep:  qtyStep,
	}, nil
}

// FindInstrument locates the symbol's entry in a catalog snapshot. The
// listing poller has already confirmed the symbol, so an absent entry is a
// structural inconsistency, not a transient condition.
func FindInstrument(catalog []bybit.Instrument, symbol string) (*bybit.Instrument, error) {
	for i := range catalog {
		if catalog[i].Symbol == symbol {
			return &catalog[i], nil
		}
	}

	return nil, fmt.Errorf("symbol %s not present in instrument catalog", symbol)
}

// DecimalPlaces counts the significant decimal places of an increment,
// e.g. 0.01 -> 2, 0.010 -> 2, 1 -> 0.
func DecimalPlaces(increment decimal.Decimal) int32 {
	str := increment.String()
	dot := strings.IndexByte(str, '.')
	if dot < 0 {
		return 0
	}

	frac := strings.TrimRight(str[dot+1:], "0")

	return int32(len(frac))
}

func parseIncrement(raw string) (decimal.Decimal, error) {
	if raw == "" {
		raw = defaultIncrement
	}

	inc, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse increment %q: %w", raw, err)
	}

	if !inc.IsPositive() {
		return decimal.Zero, fmt.Errorf("increment must be positive, got %s", inc)
	}

	return inc, nil
}
