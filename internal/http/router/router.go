package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	_ "github.com/rogerio-castellano/pantry-tracker/docs"
	"github.com/rogerio-castellano/pantry-tracker/internal/auth"
	"github.com/rogerio-castellano/pantry-tracker/internal/http/handlers"
	mw "github.com/rogerio-castellano/pantry-tracker/internal/http/middleware"
	rl "github.com/rogerio-castellano/pantry-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/pantry-tracker/internal/metrics"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type Dependencies struct {
	Tokens   *auth.Tokens
	Visitors *rl.Visitors
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
}

func NewRouter(d Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	if d.Logger != nil {
		r.Use(mw.RequestLogger(d.Logger))
	}

	r.Post("/register", handlers.RegisterHandler)
	r.Post("/login", handlers.LoginHandler)
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Group(func(r chi.Router) {
		r.Use(mw.JWTAuth(d.Tokens))

		r.Route("/items", func(r chi.Router) {
			r.Get("/", handlers.GetItemsHandler)
			r.Post("/", handlers.CreateItemHandler)
			r.Post("/import", handlers.ImportItemsHandler)
			r.Get("/summary", handlers.GetSummaryHandler)
			r.Get("/ws", handlers.StreamItemsHandler)
			r.Delete("/{id}", handlers.DeleteItemHandler)
			r.Post("/{id}/increment", handlers.IncrementItemHandler)
			r.Post("/{id}/decrement", handlers.DecrementItemHandler)
			r.Post("/{id}/adjust", handlers.AdjustItemHandler)
		})

		r.Group(func(r chi.Router) {
			if d.Visitors != nil {
				r.Use(mw.RateLimit(d.Visitors))
			}
			r.Post("/recipes", handlers.SuggestRecipesHandler)
		})
	})

	return r
}
