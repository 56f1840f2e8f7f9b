package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", handler.Home)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", handler.Login)
		r.Post("/register", handler.Register)
		r.Post("/logout", handler.Logout)
		r.Get("/me", handler.Me)
		r.Patch("/profile", handler.UpdateProfile)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", handler.ListProducts)
		r.Get("/{slug}", handler.GetProduct)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", handler.GetCart)
		r.Delete("/", handler.ClearCart)
		r.Post("/items", handler.AddToCart)
		r.Patch("/items/{id}", handler.UpdateCartItem)
		r.Delete("/items/{id}", handler.RemoveCartItem)
		r.Post("/checkout", handler.Checkout)
	})

	r.Route("/wishlist", func(r chi.Router) {
		r.Get("/", handler.GetWishlist)
		r.Post("/toggle", handler.ToggleWishlist)
	})

	r.Post("/contact", handler.SendContact)

	r.Route("/account", func(r chi.Router) {
		r.Get("/", handler.AccountOverview)
		r.Get("/summary", handler.AccountSummary)
		r.Get("/invoices", handler.AccountInvoices)
	})

	r.Route("/shopkeeper", func(r chi.Router) {
		r.Post("/login", handler.ShopkeeperLogin)
		r.Post("/logout", handler.ShopkeeperLogout)
		r.Get("/orders", handler.DashboardData)
		r.Patch("/deliveries/{id}", handler.UpdateDeliveryStatus)
	})

	return r
}
