package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vaughan-dsouza/posts-api/internal/handlers"
	"github.com/vaughan-dsouza/posts-api/internal/middleware"
)

// PostsPrefix is where the posts resource is mounted.
const PostsPrefix = "/api/posts"

type Options struct {
	Logger *zap.SugaredLogger
	// Registry receives the http metrics and is served on /metrics. A fresh
	// registry is created when nil.
	Registry *prometheus.Registry
}

func New(h *handlers.Handler, opts Options) http.Handler {
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics := middleware.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(metrics.Handler)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route(PostsPrefix, func(r chi.Router) {
		r.Get("/", h.Posts.GetPosts)
		r.Post("/", h.Posts.CreatePost)
		r.Get("/{id}", h.Posts.GetPostByID)
		r.Put("/{id}", h.Posts.UpdatePost)
		r.Delete("/{id}", h.Posts.DeletePost)
	})

	return r
}
