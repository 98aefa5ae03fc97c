package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mkhalid-dev/rukhsar-storefront/app/helpers"
	"github.com/mkhalid-dev/rukhsar-storefront/app/repositories"
	"github.com/unrolled/render"
)

type OrderHandler struct {
	orderRepo repositories.OrderRepository
	render    *render.Render
}

func NewOrderHandler(orderRepo repositories.OrderRepository, render *render.Render) *OrderHandler {
	return &OrderHandler{orderRepo: orderRepo, render: render}
}

// ConfirmationGet shows the placed order by its code.
func (h *OrderHandler) ConfirmationGet(w http.ResponseWriter, r *http.Request) {
	orderCode := mux.Vars(r)["code"]

	order, err := h.orderRepo.FindByCode(r.Context(), orderCode)
	if err != nil {
		log.Printf("OrderHandler.ConfirmationGet: failed to load order %s: %v", orderCode, err)
		http.Error(w, "Failed to load order", http.StatusInternalServerError)
		return
	}
	if order == nil {
		http.NotFound(w, r)
		return
	}

	datas := helpers.GetBaseData(r, map[string]interface{}{
		"Title": "Order Confirmation",
		"Order": order,
	})
	_ = h.render.HTML(w, http.StatusOK, "order_confirmation", datas)
}
