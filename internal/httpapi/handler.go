package httpapi

import (
	"net/http"

	"agrocampo-be/internal/cart"
	"agrocampo-be/internal/farm"
	"agrocampo-be/internal/logger"
	"agrocampo-be/internal/middleware"
	"agrocampo-be/internal/product"
	"agrocampo-be/internal/purchase"
	"agrocampo-be/internal/shipment"
	"agrocampo-be/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler owns the HTTP surface of the marketplace.
type Handler struct {
	users     user.Service
	products  product.Service
	farms     farm.Repository
	carts     cart.Service
	purchases purchase.Service
	shipments shipment.Service

	validate *validator.Validate
}

func NewHandler(
	users user.Service,
	products product.Service,
	farms farm.Repository,
	carts cart.Service,
	purchases purchase.Service,
	shipments shipment.Service,
) *Handler {
	return &Handler{
		users:     users,
		products:  products,
		farms:     farms,
		carts:     carts,
		purchases: purchases,
		shipments: shipments,
		validate:  validator.New(),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.AuthMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(user.RoleProducer, user.RoleAdmin))
			r.Post("/products", h.CreateProduct)
			r.Put("/products/{id}/stock", h.UpdateProductStock)
			r.Post("/farms", h.CreateFarm)
			r.Get("/farms", h.ListFarms)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(user.RoleClient, user.RoleAdmin))
			r.Get("/cart", h.GetCart)
			r.Post("/cart", h.AddToCart)
			r.Put("/cart", h.UpdateCartQuantity)
			r.Delete("/cart/{productID}", h.RemoveFromCart)
			r.Post("/cart/checkout", h.Checkout)

			r.Post("/purchases", h.CreatePurchase)
			r.Get("/purchases", h.ListPurchases)
			r.Get("/purchases/{id}", h.GetPurchase)
			r.Post("/purchases/{id}/lines", h.AddPurchaseLine)
			r.Delete("/purchases/{id}", h.CancelPurchase)
			r.Post("/purchases/{id}/pay", h.PayPurchase)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/shipments/{id}", h.GetShipment)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(user.RoleCarrier, user.RoleAdvisor, user.RoleAdmin))
			r.Get("/shipments", h.ListShipments)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(user.RoleAdvisor, user.RoleAdmin))
			r.Post("/shipments/{id}/recompute", h.RecomputeShipment)
			r.Post("/shipments/{id}/assign", h.AssignShipment)
			r.Post("/shipments/{id}/finalize", h.FinalizeShipment)
		})
	})

	return r
}
