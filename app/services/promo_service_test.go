package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mkhalid-dev/rukhsar-storefront/app/storage"
	"github.com/shopspring/decimal"
)

func TestPromoServiceApplyAndRead(t *testing.T) {
	ctx := context.Background()
	promos := NewPromoService(storage.NewMemoryKV())

	amount, err := promos.Apply(ctx, "profile-1", " welcome100 ")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !amount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Apply = %s, want 100", amount)
	}
	if d := promos.AppliedDiscount(ctx, "profile-1"); !d.Equal(decimal.NewFromInt(100)) {
		t.Errorf("AppliedDiscount = %s, want 100", d)
	}
}

func TestPromoServiceUnknownCode(t *testing.T) {
	ctx := context.Background()
	promos := NewPromoService(storage.NewMemoryKV())

	if _, err := promos.Apply(ctx, "profile-1", "NOPE"); !errors.Is(err, ErrUnknownPromoCode) {
		t.Fatalf("Apply unknown code = %v, want ErrUnknownPromoCode", err)
	}
}

func TestPromoServiceCorruptValueReadsAsZero(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	promos := NewPromoService(kv)

	_ = kv.Set(ctx, "discount:profile-1", "not-a-number")
	if d := promos.AppliedDiscount(ctx, "profile-1"); !d.IsZero() {
		t.Errorf("AppliedDiscount = %s, want 0 for corrupt value", d)
	}
}

func TestPromoServiceClear(t *testing.T) {
	ctx := context.Background()
	promos := NewPromoService(storage.NewMemoryKV())

	_, _ = promos.Apply(ctx, "profile-1", "EID500")
	promos.Clear(ctx, "profile-1")
	if d := promos.AppliedDiscount(ctx, "profile-1"); !d.IsZero() {
		t.Errorf("AppliedDiscount = %s after Clear, want 0", d)
	}
}
