package middlewares

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/mkhalid-dev/rukhsar-storefront/app/helpers"
	"github.com/mkhalid-dev/rukhsar-storefront/app/services"
	"github.com/mkhalid-dev/rukhsar-storefront/app/utils/sessions"
)

// ProfileMiddleware resolves (or mints) the shopper profile ID and
// puts it on the request context for every downstream handler.
func ProfileMiddleware(profiles sessions.ProfileStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profileID, err := profiles.ProfileID(w, r)
			if err != nil {
				log.Printf("ProfileMiddleware: error resolving profile ID: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), helpers.ContextKeyProfileID, profileID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartCountMiddleware exposes the profile's live item count to the
// base template data.
func CartCountMiddleware(carts *services.CartManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profileID := helpers.GetProfileIDFromContext(r)
			if profileID == "" {
				next.ServeHTTP(w, r)
				return
			}
			count := carts.Counter(profileID).Count()
			ctx := context.WithValue(r.Context(), helpers.CartCountKey, count)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CSRFTokenMiddleware puts the per-request token on the context so
// GetBaseData can hand it to every form template. It has to sit inside
// the csrf.Protect wrapper or the token comes back empty.
func CSRFTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), helpers.CSRFTokenKey, csrf.Token(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// MethodOverrideMiddleware rewrites a form POST carrying _method into
// the verb the cart routes are registered under. It must wrap the
// router itself; mux matches the method before route middleware runs.
func MethodOverrideMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = r.ParseForm()
			override := r.Form.Get("_method")
			if override != "" {
				r.Method = strings.ToUpper(override)
			}
		}
		next.ServeHTTP(w, r)
	})
}
