package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/mkhalid-dev/rukhsar-storefront/app/helpers"
	"github.com/mkhalid-dev/rukhsar-storefront/app/middlewares"
	"github.com/mkhalid-dev/rukhsar-storefront/app/models"
	"github.com/mkhalid-dev/rukhsar-storefront/app/services"
	"github.com/mkhalid-dev/rukhsar-storefront/app/storage"
	"github.com/mkhalid-dev/rukhsar-storefront/app/utils/renderer"
	"github.com/shopspring/decimal"
)

var testCSRFKey = []byte("32-byte-long-auth-key-for-tests!")

type stubProductRepo struct {
	products map[string]*models.Product
}

func (s *stubProductRepo) GetAll(ctx context.Context) ([]models.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return s.products[id], nil
}

func (s *stubProductRepo) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	for _, p := range s.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func catalogProduct(id string, price int64) *models.Product {
	return &models.Product{
		ID:        id,
		Name:      "Product " + id,
		Slug:      "product-" + id,
		ListPrice: decimal.NewFromInt(price),
		Kind:      models.VariantRegular,
	}
}

func withProfile(profileID string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), helpers.ContextKeyProfileID, profileID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// newProtectedCartStack wires the cart routes the way the router does:
// token middleware inside csrf.Protect, method override around the mux.
func newProtectedCartStack(h *CartHandler) http.Handler {
	router := mux.NewRouter()
	router.Use(middlewares.CSRFTokenMiddleware)
	router.Use(withProfile("profile-1"))
	router.HandleFunc("/carts/token", func(w http.ResponseWriter, r *http.Request) {
		data := helpers.GetBaseData(r, nil)
		fmt.Fprint(w, data["CSRFToken"])
	}).Methods("GET")
	router.HandleFunc("/carts/add", h.AddItem).Methods("POST")

	protect := csrf.Protect(testCSRFKey, csrf.Secure(false))
	return protect(middlewares.MethodOverrideMiddleware(router))
}

func TestAddItemAcceptsFormCarryingCSRFToken(t *testing.T) {
	kv := storage.NewMemoryKV()
	carts := services.NewCartManager(kv)
	repo := &stubProductRepo{products: map[string]*models.Product{"p1": catalogProduct("p1", 350)}}
	h := NewCartHandler(repo, carts, services.NewPromoService(kv), renderer.New())
	stack := newProtectedCartStack(h)

	// Harvest the token the way a rendered form does.
	getRec := httptest.NewRecorder()
	stack.ServeHTTP(getRec, httptest.NewRequest("GET", "/carts/token", nil))
	token := getRec.Body.String()
	if token == "" {
		t.Fatal("template data carried no token")
	}

	form := url.Values{"product_id": {"p1"}, "qty": {"2"}}
	req := httptest.NewRequest("POST", "/carts/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRF-Token", token)
	for _, c := range getRec.Result().Cookies() {
		req.AddCookie(c)
	}

	postRec := httptest.NewRecorder()
	stack.ServeHTTP(postRec, req)

	if postRec.Code != http.StatusSeeOther {
		t.Fatalf("POST /carts/add = %d, want %d; body: %s", postRec.Code, http.StatusSeeOther, postRec.Body.String())
	}
	lines := carts.Store("profile-1").Items(context.Background())
	if len(lines) != 1 || lines[0].QuantityRequested != 2 {
		t.Errorf("cart lines = %+v, want one line with quantity 2", lines)
	}
}

func TestAddItemRejectsFormWithoutCSRFToken(t *testing.T) {
	kv := storage.NewMemoryKV()
	carts := services.NewCartManager(kv)
	repo := &stubProductRepo{products: map[string]*models.Product{"p1": catalogProduct("p1", 350)}}
	h := NewCartHandler(repo, carts, services.NewPromoService(kv), renderer.New())
	stack := newProtectedCartStack(h)

	form := url.Values{"product_id": {"p1"}, "qty": {"2"}}
	req := httptest.NewRequest("POST", "/carts/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	stack.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("POST without token = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if lines := carts.Store("profile-1").Items(context.Background()); len(lines) != 0 {
		t.Errorf("cart has %d lines after rejected POST, want 0", len(lines))
	}
}

func TestMethodOverrideDrivesUpdateAndDeleteRoutes(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	carts := services.NewCartManager(kv)
	repo := &stubProductRepo{products: map[string]*models.Product{"p1": catalogProduct("p1", 350)}}
	h := NewCartHandler(repo, carts, services.NewPromoService(kv), renderer.New())

	if err := carts.Store("profile-1").Add(ctx, repo.products["p1"], 1); err != nil {
		t.Fatalf("Add: %v", err)
	}

	router := mux.NewRouter()
	router.Use(withProfile("profile-1"))
	router.HandleFunc("/carts/update", h.UpdateItem).Methods("PUT")
	router.HandleFunc("/carts/delete", h.DeleteItem).Methods("DELETE")
	stack := middlewares.MethodOverrideMiddleware(router)

	postForm := func(path string, form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		stack.ServeHTTP(rec, req)
		return rec
	}

	rec := postForm("/carts/update", url.Values{"_method": {"PUT"}, "product_id": {"p1"}, "qty": {"5"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("overridden PUT = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	lines := carts.Store("profile-1").Items(ctx)
	if len(lines) != 1 || lines[0].QuantityRequested != 5 {
		t.Fatalf("cart lines = %+v, want one line with quantity 5", lines)
	}

	rec = postForm("/carts/delete", url.Values{"_method": {"DELETE"}, "product_id": {"p1"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("overridden DELETE = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if lines := carts.Store("profile-1").Items(ctx); len(lines) != 0 {
		t.Errorf("cart has %d lines after delete, want 0", len(lines))
	}
}
