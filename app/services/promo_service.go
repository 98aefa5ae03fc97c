package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/mkhalid-dev/rukhsar-storefront/app/storage"
	"github.com/shopspring/decimal"
)

const discountKeyPrefix = "discount:"

var ErrUnknownPromoCode = errors.New("unknown promo code")

// promoAmounts is the fixed table of flat rupee discounts a shopper
// can apply at the cart.
var promoAmounts = map[string]decimal.Decimal{
	"WELCOME100": decimal.NewFromInt(100),
	"RUKHSAR250": decimal.NewFromInt(250),
	"EID500":     decimal.NewFromInt(500),
}

// PromoService persists the applied flat discount for a profile under
// its own key so totals pick it up on every recalculation.
type PromoService struct {
	kv storage.KV
}

func NewPromoService(kv storage.KV) *PromoService {
	return &PromoService{kv: kv}
}

func (s *PromoService) Apply(ctx context.Context, profileID, code string) (decimal.Decimal, error) {
	amount, ok := promoAmounts[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return decimal.Zero, ErrUnknownPromoCode
	}
	if err := s.kv.Set(ctx, discountKeyPrefix+profileID, amount.String()); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// AppliedDiscount returns the stored flat discount, or zero when no
// code is applied or the stored value is unreadable.
func (s *PromoService) AppliedDiscount(ctx context.Context, profileID string) decimal.Decimal {
	raw, ok, err := s.kv.Get(ctx, discountKeyPrefix+profileID)
	if err != nil {
		log.Printf("PromoService.AppliedDiscount: failed to read discount for %s: %v", profileID, err)
		return decimal.Zero
	}
	if !ok || raw == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("PromoService.AppliedDiscount: corrupt discount value %q for %s: %v", raw, profileID, err)
		return decimal.Zero
	}
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

func (s *PromoService) Clear(ctx context.Context, profileID string) {
	if err := s.kv.Remove(ctx, discountKeyPrefix+profileID); err != nil {
		log.Printf("PromoService.Clear: failed to clear discount for %s: %v", profileID, err)
	}
}
