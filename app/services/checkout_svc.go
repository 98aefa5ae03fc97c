package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mkhalid-dev/rukhsar-storefront/app/models"
	"github.com/mkhalid-dev/rukhsar-storefront/app/repositories"
	"github.com/mkhalid-dev/rukhsar-storefront/app/utils/calc"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)

// CheckoutService finalizes an order: simulated payment first, then
// order creation, and only after the backend confirms does it clear
// the cart and the applied promo. A failed submission leaves the cart
// exactly as it was so the shopper can retry.
type CheckoutService struct {
	carts     *CartManager
	promos    *PromoService
	orderRepo repositories.OrderRepository
	payments  PaymentProcessor

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewCheckoutService(
	carts *CartManager,
	promos *PromoService,
	orderRepo repositories.OrderRepository,
	payments PaymentProcessor,
) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		promos:    promos,
		orderRepo: orderRepo,
		payments:  payments,
		inFlight:  make(map[string]bool),
	}
}

func (s *CheckoutService) Submit(ctx context.Context, profileID string, form CheckoutForm) (*models.Order, error) {
	if !s.begin(profileID) {
		return nil, ErrCheckoutInProgress
	}
	defer s.end(profileID)

	store := s.carts.Store(profileID)
	lines := store.Items(ctx)
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	discount := s.promos.AppliedDiscount(ctx, profileID)
	totals := calc.OrderTotals(lines, discount)

	if err := s.payments.Authorize(ctx, form.PaymentMethod, totals.Total); err != nil {
		return nil, fmt.Errorf("payment authorization failed: %w", err)
	}

	now := time.Now()
	order := &models.Order{
		OrderCode:      fmt.Sprintf("INV-%s-%s", now.Format("20060102"), uuid.New().String()[:8]),
		OrderDate:      now,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.Discount,
		ShippingCost:   totals.Shipping,
		GrandTotal:     totals.Total,
		PaymentMethod:  form.PaymentMethod,
		Status:         models.OrderStatusPending,
		Customer: &models.OrderCustomer{
			FirstName:  form.FirstName,
			LastName:   form.LastName,
			Email:      form.Email,
			Phone:      form.Phone,
			Address:    form.Address,
			City:       form.City,
			PostalCode: form.PostalCode,
		},
	}
	for _, line := range lines {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Qty:         line.QuantityRequested,
			Price:       calc.EffectiveUnitPrice(line),
			LineTotal:   calc.LineTotal(line),
		})
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Cart and promo are cleared only after the backend confirmed the
	// order; the store's own notification resets the live count.
	if err := store.Clear(ctx); err != nil {
		log.Printf("CheckoutService.Submit: order %s created but cart clear failed: %v", order.OrderCode, err)
	}
	s.promos.Clear(ctx, profileID)

	return order, nil
}

func (s *CheckoutService) begin(profileID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[profileID] {
		return false
	}
	s.inFlight[profileID] = true
	return true
}

func (s *CheckoutService) end(profileID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, profileID)
}
