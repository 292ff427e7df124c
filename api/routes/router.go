package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopora/storefront-backend/api/controllers"
	"github.com/shopora/storefront-backend/api/middleware"
	cartsvc "github.com/shopora/storefront-backend/internal/cart"
	checkoutsvc "github.com/shopora/storefront-backend/internal/checkout"
	"github.com/shopora/storefront-backend/internal/discountcodes"
	"github.com/shopora/storefront-backend/pkg/config"
	"github.com/shopora/storefront-backend/pkg/db"
	"github.com/shopora/storefront-backend/pkg/logger"
	pkgredis "github.com/shopora/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	cache pkgredis.Pinger,
	registry *prometheus.Registry,
	tenants middleware.TenantResolver,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	codeService discountcodes.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.API.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, cache, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(
			middleware.Tenant(tenants, logg),
			middleware.Session(logg),
			middleware.Identity(logg),
		)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartSummary(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/items/{key}", controllers.CartUpdateItem(cartService, logg))
			r.Delete("/items/{key}", controllers.CartRemoveItem(cartService, logg))
		})

		r.Post("/discount-codes/validate", controllers.DiscountCodeValidate(codeService, cartService, logg))

		r.Post("/checkout", controllers.CheckoutFinalize(checkoutService, logg))
		r.Post("/checkout/verify", controllers.CheckoutVerifyPayment(checkoutService, logg))
		r.Get("/orders/{orderID}", controllers.OrderGet(checkoutService, logg))

		r.Route("/commissions/{orderID}", func(r chi.Router) {
			r.Post("/pay", controllers.CommissionPay(checkoutService, logg))
			r.Post("/cancel", controllers.CommissionCancel(checkoutService, logg))
		})
	})

	return r
}
