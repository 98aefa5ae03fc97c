package routes

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"
	"github.com/mkhalid-dev/rukhsar-storefront/app/configs"
	"github.com/mkhalid-dev/rukhsar-storefront/app/handlers"
	"github.com/mkhalid-dev/rukhsar-storefront/app/middlewares"
	"github.com/mkhalid-dev/rukhsar-storefront/app/repositories"
	"github.com/mkhalid-dev/rukhsar-storefront/app/services"
	"github.com/mkhalid-dev/rukhsar-storefront/app/storage"
	"github.com/mkhalid-dev/rukhsar-storefront/app/utils/imageurl"
	"github.com/mkhalid-dev/rukhsar-storefront/app/utils/renderer"
	"github.com/mkhalid-dev/rukhsar-storefront/app/utils/sessions"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB) http.Handler {
	env := configs.LoadENV

	keys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		log.Printf("NewRouter: %v; using throwaway session keys", err)
		keys = &configs.SessionKeys{
			AuthKey: securecookie.GenerateRandomKey(64),
			EncKey:  securecookie.GenerateRandomKey(32),
		}
	}

	kv := storage.NewGormKV(db)
	carts := services.NewCartManager(kv)
	promos := services.NewPromoService(kv)

	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	payments := &services.SimulatedProcessor{Delay: paymentDelay(env)}
	checkoutSvc := services.NewCheckoutService(carts, promos, orderRepo, payments)

	render := renderer.New()
	images := imageurl.NewBuilder(env.AssetCDNBaseURL)
	profiles := sessions.NewCookieProfileStore(keys.AuthKey, keys.EncKey)

	productHandler := handlers.NewProductHandler(productRepo, images, render)
	cartHandler := handlers.NewCartHandler(productRepo, carts, promos, render)
	checkoutHandler := handlers.NewCheckoutHandler(render, services.NewCheckoutValidator(), checkoutSvc, carts, promos, profiles)
	orderHandler := handlers.NewOrderHandler(orderRepo, render)

	router := mux.NewRouter()
	router.Use(middlewares.CSRFTokenMiddleware)
	router.Use(middlewares.ProfileMiddleware(profiles))
	router.Use(middlewares.CartCountMiddleware(carts))

	router.HandleFunc("/", productHandler.Home).Methods("GET")
	router.HandleFunc("/products/{slug}", productHandler.Detail).Methods("GET")

	router.HandleFunc("/carts", cartHandler.GetCart).Methods("GET")
	router.HandleFunc("/carts/add", cartHandler.AddItem).Methods("POST")
	router.HandleFunc("/carts/update", cartHandler.UpdateItem).Methods("PUT")
	router.HandleFunc("/carts/delete", cartHandler.DeleteItem).Methods("DELETE")
	router.HandleFunc("/carts/promo", cartHandler.ApplyPromo).Methods("POST")
	router.HandleFunc("/carts/count", cartHandler.GetCartCount).Methods("GET")

	router.HandleFunc("/checkout", checkoutHandler.CheckoutGet).Methods("GET")
	router.HandleFunc("/checkout", checkoutHandler.CheckoutPost).Methods("POST")

	router.HandleFunc("/orders/{code}", orderHandler.ConfirmationGet).Methods("GET")

	csrfMiddleware := csrf.Protect(keys.AuthKey, csrf.Secure(env.APP_ENV == "production"))
	return csrfMiddleware(middlewares.MethodOverrideMiddleware(router))
}

func paymentDelay(env configs.ENV) time.Duration {
	if env.PaymentDelayMS == "" {
		return 1500 * time.Millisecond
	}
	ms, err := strconv.Atoi(env.PaymentDelayMS)
	if err != nil || ms < 0 {
		log.Printf("paymentDelay: invalid PAYMENT_DELAY_MS %q, using default", env.PaymentDelayMS)
		return 1500 * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}
