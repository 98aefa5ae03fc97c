package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mkhalid-dev/rukhsar-storefront/app/helpers"
	"github.com/mkhalid-dev/rukhsar-storefront/app/services"
	"github.com/mkhalid-dev/rukhsar-storefront/app/utils/calc"
	"github.com/mkhalid-dev/rukhsar-storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type CheckoutHandler struct {
	render      *render.Render
	validator   *validator.Validate
	checkoutSvc *services.CheckoutService
	carts       *services.CartManager
	promos      *services.PromoService
	profiles    sessions.ProfileStore
}

func NewCheckoutHandler(
	render *render.Render,
	validator *validator.Validate,
	checkoutSvc *services.CheckoutService,
	carts *services.CartManager,
	promos *services.PromoService,
	profiles sessions.ProfileStore,
) *CheckoutHandler {
	return &CheckoutHandler{
		render:      render,
		validator:   validator,
		checkoutSvc: checkoutSvc,
		carts:       carts,
		promos:      promos,
		profiles:    profiles,
	}
}

// CheckoutGet renders the checkout form. Reaching it with an empty
// cart is not an error, just a silent bounce back to the cart page.
func (h *CheckoutHandler) CheckoutGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profileID := helpers.GetProfileIDFromContext(r)

	lines := h.carts.Store(profileID).Items(ctx)
	if len(lines) == 0 {
		http.Redirect(w, r, "/carts", http.StatusSeeOther)
		return
	}

	discount := h.promos.AppliedDiscount(ctx, profileID)
	totals := calc.OrderTotals(lines, discount)

	datas := helpers.GetBaseData(r, map[string]interface{}{
		"Title":  "Checkout",
		"Lines":  lines,
		"Totals": totals,
		"Form":   services.CheckoutForm{},
		"Errors": map[string]string{},
	})
	_ = h.render.HTML(w, http.StatusOK, "checkout", datas)
}

func (h *CheckoutHandler) CheckoutPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profileID := helpers.GetProfileIDFromContext(r)

	if err := r.ParseForm(); err != nil {
		log.Printf("CheckoutHandler.CheckoutPost: error parsing form: %v", err)
		redirectWithMessage(w, r, "/carts", "error", "Failed to process checkout form.")
		return
	}

	form := services.CheckoutForm{
		FirstName:     r.PostFormValue("first_name"),
		LastName:      r.PostFormValue("last_name"),
		Email:         r.PostFormValue("email"),
		Phone:         r.PostFormValue("phone"),
		Address:       r.PostFormValue("address"),
		City:          r.PostFormValue("city"),
		PostalCode:    r.PostFormValue("postal_code"),
		PaymentMethod: r.PostFormValue("payment_method"),
		WalletNumber:  r.PostFormValue("wallet_number"),
		TransactionID: r.PostFormValue("transaction_id"),
	}

	if err := h.validator.Struct(&form); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			log.Printf("CheckoutHandler.CheckoutPost: unexpected validation failure: %v", err)
			redirectWithMessage(w, r, "/checkout", "error", "Failed to validate checkout form.")
			return
		}
		h.renderEditing(w, r, form, helpers.FormatValidationErrors(validationErrors))
		return
	}

	order, err := h.checkoutSvc.Submit(ctx, profileID, form)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			http.Redirect(w, r, "/carts", http.StatusSeeOther)
		case errors.Is(err, services.ErrCheckoutInProgress):
			redirectWithMessage(w, r, "/checkout", "warning", "Your order is already being processed.")
		default:
			log.Printf("CheckoutHandler.CheckoutPost: submission failed for profile %s: %v", profileID, err)
			h.renderEditing(w, r, form, map[string]string{
				"submit": "We could not place your order. Please try again.",
			})
		}
		return
	}

	// The order is placed; retire this shopper profile so the next
	// visit starts on a fresh one, and drop its cached cart pair.
	if err := h.profiles.ClearSession(w, r); err != nil {
		log.Printf("CheckoutHandler.CheckoutPost: error clearing profile session: %v", err)
	}
	h.carts.Release(profileID)

	redirectWithMessage(w, r, "/orders/"+order.OrderCode, "success", "Order placed successfully!")
}

// renderEditing puts the shopper back on the form with field errors
// and the current cart summary intact.
func (h *CheckoutHandler) renderEditing(w http.ResponseWriter, r *http.Request, form services.CheckoutForm, fieldErrors map[string]string) {
	ctx := r.Context()
	profileID := helpers.GetProfileIDFromContext(r)

	lines := h.carts.Store(profileID).Items(ctx)
	discount := h.promos.AppliedDiscount(ctx, profileID)
	totals := calc.OrderTotals(lines, discount)

	datas := helpers.GetBaseData(r, map[string]interface{}{
		"Title":  "Checkout",
		"Lines":  lines,
		"Totals": totals,
		"Form":   form,
		"Errors": fieldErrors,
	})
	_ = h.render.HTML(w, http.StatusUnprocessableEntity, "checkout", datas)
}
