package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func NewRouter(handler *Handler, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(Recoverer(log))
	r.Use(Timeout)
	r.Use(CORS)

	r.Get("/healthz", handler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/customers", handler.ListCustomers)
		r.Post("/customers", handler.CreateCustomer)
		r.Put("/customers/{id}", handler.UpdateCustomer)
		r.Delete("/customers/{id}", handler.DeleteCustomer)

		r.Get("/suppliers", handler.ListSuppliers)
		r.Post("/suppliers", handler.CreateSupplier)
		r.Put("/suppliers/{id}", handler.UpdateSupplier)
		r.Delete("/suppliers/{id}", handler.DeleteSupplier)

		r.Get("/ingredients", handler.ListIngredients)
		r.Post("/ingredients", handler.CreateIngredient)
		r.Put("/ingredients/{id}", handler.UpdateIngredient)
		r.Delete("/ingredients/{id}", handler.DeleteIngredient)
		r.Post("/ingredients/import-excel", handler.ImportIngredientPrices)

		r.Get("/products", handler.ListProducts)
		r.Get("/products/{id}", handler.GetProduct)
		r.Post("/products", handler.CreateProduct)
		r.Delete("/products/{id}", handler.DeleteProduct)

		r.Get("/expenses", handler.ListExpenses)
		r.Post("/expenses", handler.CreateExpense)
		r.Put("/expenses/{id}", handler.UpdateExpense)
		r.Delete("/expenses/{id}", handler.DeleteExpense)

		r.Get("/sales", handler.ListSales)
		r.Post("/sales", handler.CreateSale)

		r.Get("/reports/financial-summary", handler.FinancialSummary)
	})

	return r
}
