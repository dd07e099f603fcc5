// internal/platform/di/store/register.go
package store

import (
	"encoding/json"
	"log"
	"net/http"

	"sristi/internal/adapters/in/http/middleware"
	storeHandler "sristi/internal/adapters/in/http/store/handler"
)

// requireUserAuth wraps handler with UserAuthMiddleware (fail-closed).
// If the middleware is not initialized it returns 503 so the bug is obvious.
func requireUserAuth(mw *middleware.UserAuthMiddleware, h http.Handler, name string) http.Handler {
	if h == nil {
		h = http.NotFoundHandler()
	}
	if mw == nil || mw.Verifier == nil {
		log.Printf("[store.register] ERROR: UserAuthMiddleware is not initialized (endpoint=%s). returning 503", name)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "user_auth_not_initialized",
				"name":  name,
			})
		})
	}
	return mw.Handler(h)
}

// requireUserAuthFor applies auth only to the listed methods; other methods
// pass through unauthenticated. Used for the catalog subtree where reads are
// public but review submission is not.
func requireUserAuthFor(mw *middleware.UserAuthMiddleware, h http.Handler, name string, methods ...string) http.Handler {
	authed := requireUserAuth(mw, h, name)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, m := range methods {
			if r.Method == m {
				authed.ServeHTTP(w, r)
				return
			}
		}
		h.ServeHTTP(w, r)
	})
}

// Register mounts the store routes onto mux. Pure DI: construct handlers and
// hand them to the mux; no method/path branching here beyond auth scoping.
func Register(mux *http.ServeMux, cont *Container) {
	if mux == nil || cont == nil {
		return
	}

	userAuthMW := &middleware.UserAuthMiddleware{}
	if cont.Infra != nil && cont.Infra.FirebaseAuth != nil {
		userAuthMW.Verifier = cont.Infra.FirebaseAuth
	} else {
		// fail-closed in requireUserAuth
		log.Printf("[store.register] WARN: FirebaseAuth is nil (protected endpoints will return 503)")
	}

	signupH := storeHandler.NewSignupHandler(cont.UserUC)
	meH := storeHandler.NewMeHandler(cont.UserUC)
	cartH := storeHandler.NewCartHandler(cont.CartUC)
	catalogH := storeHandler.NewCatalogHandler(cont.CatalogUC, cont.ReviewUC, cont.UserUC)
	orderH := storeHandler.NewOrderHandler(cont.OrderUC)
	checkoutH := storeHandler.NewCheckoutHandler(cont.CheckoutUC)
	paymentH := storeHandler.NewPaymentOrderHandler(cont.Gateway)
	bannerH := storeHandler.NewBannerHandler(cont.BannerRepo)
	catalogStreamH := storeHandler.NewCatalogStreamHandler(cont.CatalogUC)
	bannerStreamH := storeHandler.NewBannerStreamHandler(cont.BannerRepo)

	// public
	mux.Handle("/store/signup", signupH)
	mux.Handle("/store/banners/home", bannerH)
	mux.Handle("/store/banners/home/stream", bannerStreamH)
	mux.Handle("/store/products/stream", catalogStreamH)

	// catalog: reads public, review POST authenticated
	mux.Handle("/store/products", requireUserAuthFor(userAuthMW, catalogH, "Catalog", http.MethodPost))
	mux.Handle("/store/products/", requireUserAuthFor(userAuthMW, catalogH, "Catalog", http.MethodPost))

	// authenticated
	mux.Handle("/store/me", requireUserAuth(userAuthMW, meH, "Me"))
	mux.Handle("/store/me/contact", requireUserAuth(userAuthMW, meH, "MeContact"))
	mux.Handle("/store/me/wishlist/toggle", requireUserAuth(userAuthMW, meH, "WishlistToggle"))
	mux.Handle("/store/me/cart", requireUserAuth(userAuthMW, cartH, "Cart"))
	mux.Handle("/store/me/cart/items", requireUserAuth(userAuthMW, cartH, "CartItems"))
	mux.Handle("/store/me/orders", requireUserAuth(userAuthMW, orderH, "Orders"))
	mux.Handle("/store/orders/", requireUserAuth(userAuthMW, orderH, "Order"))
	mux.Handle("/store/checkout", requireUserAuth(userAuthMW, checkoutH, "Checkout"))
	mux.Handle("/store/checkout/", requireUserAuth(userAuthMW, checkoutH, "CheckoutSub"))
	mux.Handle("/payments/orders", requireUserAuth(userAuthMW, paymentH, "PaymentOrders"))

	log.Printf("[store.register] routes registered")
}
