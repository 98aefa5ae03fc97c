package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mkhalid-dev/rukhsar-storefront/app/helpers"
	"github.com/mkhalid-dev/rukhsar-storefront/app/repositories"
	"github.com/mkhalid-dev/rukhsar-storefront/app/services"
	"github.com/mkhalid-dev/rukhsar-storefront/app/utils/calc"
	"github.com/mkhalid-dev/rukhsar-storefront/app/utils/format"
	"github.com/unrolled/render"
)

type CartHandler struct {
	productRepo repositories.ProductRepositoryImpl
	carts       *services.CartManager
	promos      *services.PromoService
	render      *render.Render
}

func NewCartHandler(
	productRepo repositories.ProductRepositoryImpl,
	carts *services.CartManager,
	promos *services.PromoService,
	render *render.Render,
) *CartHandler {
	return &CartHandler{
		productRepo: productRepo,
		carts:       carts,
		promos:      promos,
		render:      render,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profileID := helpers.GetProfileIDFromContext(r)

	lines := h.carts.Store(profileID).Items(ctx)
	discount := h.promos.AppliedDiscount(ctx, profileID)
	totals := calc.OrderTotals(lines, discount)

	datas := helpers.GetBaseData(r, map[string]interface{}{
		"Title":    "Shopping Cart",
		"Lines":    lines,
		"Totals":   totals,
		"Discount": discount,
	})
	_ = h.render.HTML(w, http.StatusOK, "carts", datas)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to read form data", http.StatusBadRequest)
		return
	}

	productID := r.FormValue("product_id")
	qtyStr := r.FormValue("qty")
	if productID == "" {
		redirectWithMessage(w, r, "/", "error", "Product is missing.")
		return
	}

	qty := 1
	if qtyStr != "" {
		parsed, err := strconv.Atoi(qtyStr)
		if err != nil || parsed < 1 {
			redirectWithMessage(w, r, "/", "error", "Quantity must be at least 1.")
			return
		}
		qty = parsed
	}

	product, err := h.productRepo.GetByID(r.Context(), productID)
	if err != nil || product == nil {
		log.Printf("CartHandler.AddItem: product %s not found: %v", productID, err)
		redirectWithMessage(w, r, "/", "error", "Product not found.")
		return
	}

	profileID := helpers.GetProfileIDFromContext(r)
	if err := h.carts.Store(profileID).Add(r.Context(), product, qty); err != nil {
		log.Printf("CartHandler.AddItem: failed to add product %s: %v", productID, err)
		redirectWithMessage(w, r, "/products/"+product.Slug, "error", "Failed to add item to cart.")
		return
	}

	redirectWithMessage(w, r, "/carts", "success", "Item added to cart!")
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID := r.FormValue("product_id")
	qty, err := strconv.Atoi(r.FormValue("qty"))
	if err != nil || qty < 1 {
		redirectWithMessage(w, r, "/carts", "error", "Quantity must be at least 1.")
		return
	}

	profileID := helpers.GetProfileIDFromContext(r)
	if err := h.carts.Store(profileID).UpdateQuantity(r.Context(), productID, qty); err != nil {
		log.Printf("CartHandler.UpdateItem: failed to update product %s: %v", productID, err)
		redirectWithMessage(w, r, "/carts", "error", "Failed to update cart item.")
		return
	}

	redirectWithMessage(w, r, "/carts", "success", "Cart updated!")
}

func (h *CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	productID := r.FormValue("product_id")
	if productID == "" {
		http.Error(w, "Invalid product", http.StatusBadRequest)
		return
	}

	profileID := helpers.GetProfileIDFromContext(r)
	if err := h.carts.Store(profileID).Remove(r.Context(), productID); err != nil {
		log.Printf("CartHandler.DeleteItem: failed to remove product %s: %v", productID, err)
		redirectWithMessage(w, r, "/carts", "error", "Failed to remove cart item.")
		return
	}

	redirectWithMessage(w, r, "/carts", "success", "Item removed from cart.")
}

func (h *CartHandler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("promo_code")
	profileID := helpers.GetProfileIDFromContext(r)

	amount, err := h.promos.Apply(r.Context(), profileID, code)
	if err != nil {
		if errors.Is(err, services.ErrUnknownPromoCode) {
			redirectWithMessage(w, r, "/carts", "error", "That promo code is not recognized.")
			return
		}
		log.Printf("CartHandler.ApplyPromo: failed to apply code %q: %v", code, err)
		redirectWithMessage(w, r, "/carts", "error", "Failed to apply promo code.")
		return
	}

	redirectWithMessage(w, r, "/carts", "success", fmt.Sprintf("Promo applied: %s off.", format.Rupees(amount)))
}

// GetCartCount serves the live badge count.
func (h *CartHandler) GetCartCount(w http.ResponseWriter, r *http.Request) {
	profileID := helpers.GetProfileIDFromContext(r)
	if profileID == "" {
		_ = h.render.JSON(w, http.StatusOK, map[string]int{"count": 0})
		return
	}

	count := h.carts.Counter(profileID).Count()
	_ = h.render.JSON(w, http.StatusOK, map[string]int{"count": count})
}

func redirectWithMessage(w http.ResponseWriter, r *http.Request, path, status, msg string) {
	http.Redirect(w, r, fmt.Sprintf("%s?status=%s&message=%s", path, status, url.QueryEscape(msg)), http.StatusSeeOther)
}
