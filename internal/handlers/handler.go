package handlers

import (
	"database/sql"
	"net/http"

	"go.uber.org/zap"

	"github.com/vaughan-dsouza/posts-api/internal/db"
	"github.com/vaughan-dsouza/posts-api/internal/repository"
	"github.com/vaughan-dsouza/posts-api/internal/utils"
)

type Handler struct {
	DB    *sql.DB
	Posts *PostHandler
}

// NewHandler wires the resource handlers to one store. sqlDB backs the
// health check and may be nil in tests.
func NewHandler(sqlDB *sql.DB, repo repository.PostRepository, log *zap.SugaredLogger) *Handler {
	return &Handler{
		DB:    sqlDB,
		Posts: NewPostHandler(repo, log),
	}
}

// Health reports whether the database answers a ping.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.DB == nil {
		utils.JSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}
	if err := db.Ping(r.Context(), h.DB); err != nil {
		utils.LoggerFrom(r.Context(), h.Posts.Log).Warnw("health check failed", "error", err)
		utils.JSON(w, http.StatusServiceUnavailable, map[string]bool{"ok": false})
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
