package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trendzapp/trendz-backend/api/controllers"
	"github.com/trendzapp/trendz-backend/api/middleware"
	"github.com/trendzapp/trendz-backend/internal/carts"
	"github.com/trendzapp/trendz-backend/internal/categories"
	"github.com/trendzapp/trendz-backend/internal/orders"
	"github.com/trendzapp/trendz-backend/internal/payments"
	"github.com/trendzapp/trendz-backend/internal/products"
	"github.com/trendzapp/trendz-backend/internal/shops"
	"github.com/trendzapp/trendz-backend/pkg/config"
	"github.com/trendzapp/trendz-backend/pkg/db"
	"github.com/trendzapp/trendz-backend/pkg/enums"
	"github.com/trendzapp/trendz-backend/pkg/logger"
	"github.com/trendzapp/trendz-backend/pkg/metrics"
	"github.com/trendzapp/trendz-backend/pkg/redis"
)

// Deps bundles everything the router needs.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	Metrics     *metrics.HTTPMetrics
	CartService carts.Service
	Orders      orders.Service
	Payments    payments.Service
	Shops       shops.Service
	Products    products.Service
	Categories  categories.Service
}

// NewRouter wires middleware, role gates, and the REST surface.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(d.Logger),
		middleware.RequestID(d.Logger),
		middleware.Logging(d.Logger),
		middleware.Metrics(d.Metrics),
		middleware.CORS(),
	)

	auth := middleware.Auth(d.Config.JWT, d.Logger)
	idem := middleware.Idempotency(d.Redis, d.Logger)
	customerOnly := middleware.RequireRole(d.Logger, string(enums.RoleCustomer))
	adminOnly := middleware.RequireRole(d.Logger, string(enums.RoleAdmin), string(enums.RoleSuperAdmin))
	orderManager := middleware.RequireOrderManager(d.Logger)
	vendorOrAdmin := middleware.RequireRole(d.Logger,
		string(enums.RoleVendor), string(enums.RoleAdmin), string(enums.RoleSuperAdmin))

	r.Get("/health", controllers.Health(d.DB, d.Redis, d.Logger))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Use(auth, idem)
			r.With(customerOnly).Post("/", controllers.AddToCart(d.CartService, d.Logger))
			r.Get("/", controllers.GetCart(d.CartService, d.Logger))
			r.Patch("/increment/{productId}", controllers.IncrementCartItem(d.CartService, d.Logger))
			r.Patch("/decrement/{productId}", controllers.DecrementCartItem(d.CartService, d.Logger))
			r.Delete("/item/{productId}", controllers.RemoveCartItem(d.CartService, d.Logger))
			r.Delete("/{id}", controllers.ClearCart(d.CartService, d.Logger))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(auth, idem)
			r.With(customerOnly).Post("/", controllers.CreateOrder(d.Orders, d.Logger))
			r.With(customerOnly).Post("/create-payment-intent", controllers.CreatePaymentIntent(d.Payments, d.Logger))
			r.With(orderManager).Get("/", controllers.ListOrders(d.Orders, d.Logger))
			r.With(orderManager).Get("/{id}", controllers.GetOrder(d.Orders, d.Logger))
			r.With(orderManager).Patch("/{id}", controllers.UpdateOrder(d.Orders, d.Logger))
			r.With(orderManager).Delete("/{id}", controllers.DeleteOrder(d.Orders, d.Logger))
		})

		r.Route("/shops", func(r chi.Router) {
			r.Get("/", controllers.ListShops(d.Shops, d.Logger))
			r.Get("/{id}", controllers.GetShop(d.Shops, d.Logger))
			r.With(auth, vendorOrAdmin).Post("/", controllers.CreateShop(d.Shops, d.Logger))
			r.With(auth, vendorOrAdmin).Patch("/{id}", controllers.UpdateShop(d.Shops, d.Logger))
			r.With(auth, vendorOrAdmin).Delete("/{id}", controllers.DeleteShop(d.Shops, d.Logger))
			r.With(auth, customerOnly).Post("/{id}/follow", controllers.FollowShop(d.Shops, d.Logger))
			r.With(auth, customerOnly).Post("/{id}/unfollow", controllers.UnfollowShop(d.Shops, d.Logger))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(d.Products, d.Logger))
			r.Get("/featured-products", controllers.FeaturedProducts(d.Products, d.Logger))
			r.With(auth, customerOnly).Get("/all-by-follow-shop", controllers.ProductsByFollowedShops(d.Products, d.Logger))
			r.Get("/{id}", controllers.GetProduct(d.Products, d.Logger))
			r.With(auth, vendorOrAdmin).Post("/", controllers.CreateProduct(d.Products, d.Logger))
			r.With(auth, vendorOrAdmin).Patch("/{id}", controllers.UpdateProduct(d.Products, d.Logger))
			r.With(auth, vendorOrAdmin).Delete("/{id}", controllers.DeleteProduct(d.Products, d.Logger))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(d.Categories, d.Logger))
			r.Get("/{id}", controllers.GetCategory(d.Categories, d.Logger))
			r.With(auth, adminOnly).Post("/", controllers.CreateCategory(d.Categories, d.Logger))
			r.With(auth, adminOnly).Patch("/{id}", controllers.UpdateCategory(d.Categories, d.Logger))
			r.With(auth, adminOnly).Delete("/{id}", controllers.DeleteCategory(d.Categories, d.Logger))
		})
	})

	return r
}
