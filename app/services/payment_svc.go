package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentCOD       = "cod"
	PaymentJazzCash  = "jazzcash"
	PaymentEasypaisa = "easypaisa"
)

type PaymentProcessor interface {
	Authorize(ctx context.Context, method string, amount decimal.Decimal) error
}

// SimulatedProcessor stands in for a payment gateway round-trip: a
// fixed delay, then success. There is no real gateway behind checkout.
type SimulatedProcessor struct {
	Delay time.Duration
}

func (p *SimulatedProcessor) Authorize(ctx context.Context, method string, amount decimal.Decimal) error {
	if p.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(p.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
