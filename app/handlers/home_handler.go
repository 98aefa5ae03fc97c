package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mkhalid-dev/rukhsar-storefront/app/helpers"
	"github.com/mkhalid-dev/rukhsar-storefront/app/models"
	"github.com/mkhalid-dev/rukhsar-storefront/app/repositories"
	"github.com/mkhalid-dev/rukhsar-storefront/app/utils/imageurl"
	"github.com/unrolled/render"
)

type ProductHandler struct {
	productRepo repositories.ProductRepositoryImpl
	images      *imageurl.Builder
	render      *render.Render
}

func NewProductHandler(
	productRepo repositories.ProductRepositoryImpl,
	images *imageurl.Builder,
	render *render.Render,
) *ProductHandler {
	return &ProductHandler{
		productRepo: productRepo,
		images:      images,
		render:      render,
	}
}

func (h *ProductHandler) Home(w http.ResponseWriter, r *http.Request) {
	products, err := h.productRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("ProductHandler.Home: failed to load products: %v", err)
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}

	datas := helpers.GetBaseData(r, map[string]interface{}{
		"Title":     "Rukhsar Store",
		"Products":  products,
		"ImageURLs": h.imageURLs(products),
	})
	_ = h.render.HTML(w, http.StatusOK, "home", datas)
}

func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	product, err := h.productRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		log.Printf("ProductHandler.Detail: failed to load product %s: %v", slug, err)
		http.Error(w, "Failed to load product", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.NotFound(w, r)
		return
	}

	var imageURL string
	if len(product.ProductImages) > 0 {
		if url, err := h.images.URLFor(product.ProductImages[0].AssetRef); err == nil {
			imageURL = url
		} else {
			log.Printf("ProductHandler.Detail: bad image ref on product %s: %v", product.ID, err)
		}
	}

	datas := helpers.GetBaseData(r, map[string]interface{}{
		"Title":    product.Name,
		"Product":  product,
		"OnSale":   product.OnSale(),
		"ImageURL": imageURL,
	})
	_ = h.render.HTML(w, http.StatusOK, "product", datas)
}

func (h *ProductHandler) imageURLs(products []models.Product) map[string]string {
	urls := make(map[string]string, len(products))
	for _, p := range products {
		if len(p.ProductImages) == 0 {
			continue
		}
		url, err := h.images.URLFor(p.ProductImages[0].AssetRef)
		if err != nil {
			log.Printf("ProductHandler.imageURLs: bad image ref on product %s: %v", p.ID, err)
			continue
		}
		urls[p.ID] = url
	}
	return urls
}
