package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vaughan-dsouza/posts-api/internal/models"
	"github.com/vaughan-dsouza/posts-api/internal/repository"
	"github.com/vaughan-dsouza/posts-api/internal/utils"
	"github.com/vaughan-dsouza/posts-api/internal/validation"
)

const (
	msgNotFound      = "Post not found."
	msgDatabaseError = "Database error."
	msgUpdated       = "Post updated successfully"
	msgDeleted       = "Post deleted successfully"
)

type PostHandler struct {
	Repo      repository.PostRepository
	Validator *validation.Validator
	Log       *zap.SugaredLogger
	Now       func() time.Time
}

func NewPostHandler(repo repository.PostRepository, log *zap.SugaredLogger) *PostHandler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &PostHandler{
		Repo:      repo,
		Validator: validation.New(),
		Log:       log,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

type statusResp struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ---------------------- LIST ----------------------

func (h *PostHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Repo.List(r.Context())
	if err != nil {
		h.dbError(w, r, "Error fetching posts", err)
		return
	}

	utils.JSON(w, http.StatusOK, posts)
}

// ---------------------- GET ONE ----------------------

func (h *PostHandler) GetPostByID(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		utils.JSONError(w, http.StatusNotFound, msgNotFound)
		return
	}

	post, err := h.Repo.GetByID(r.Context(), id)
	if errors.Is(err, repository.ErrPostNotFound) {
		utils.JSONError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		h.dbError(w, r, "Error fetching post by ID", err, "id", id)
		return
	}

	utils.JSON(w, http.StatusOK, post)
}

// ---------------------- CREATE ----------------------

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var body models.CreatePostInput
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}

	if errs := h.Validator.ValidateCreate(body); len(errs) > 0 {
		utils.JSONErrors(w, http.StatusBadRequest, errs)
		return
	}

	post := body.NewPost(h.Now())
	if err := h.Repo.Create(r.Context(), &post); err != nil {
		h.dbError(w, r, "Error inserting post", err)
		return
	}

	utils.JSON(w, http.StatusOK, post)
}

// ---------------------- UPDATE ----------------------

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var body models.UpdatePostInput
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}

	if errs := h.Validator.ValidateUpdate(body); len(errs) > 0 {
		utils.JSONErrors(w, http.StatusBadRequest, errs)
		return
	}

	id, ok := postID(r)
	if !ok {
		utils.JSONError(w, http.StatusNotFound, msgNotFound)
		return
	}

	err := h.Repo.Update(r.Context(), id, body.ToUpdate(h.Now()))
	if errors.Is(err, repository.ErrPostNotFound) {
		utils.JSONError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		h.dbError(w, r, "Error updating post", err, "id", id)
		return
	}

	utils.JSON(w, http.StatusOK, statusResp{Message: msgUpdated, ID: chi.URLParam(r, "id")})
}

// ---------------------- DELETE ----------------------

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		utils.JSONError(w, http.StatusNotFound, msgNotFound)
		return
	}

	err := h.Repo.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrPostNotFound) {
		utils.JSONError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		h.dbError(w, r, "Error deleting post", err, "id", id)
		return
	}

	utils.JSON(w, http.StatusOK, statusResp{Message: msgDeleted, ID: chi.URLParam(r, "id")})
}

// postID parses the {id} path parameter. Anything that is not a positive
// integer cannot match a row.
func postID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// dbError logs the cause and answers with the generic 500 body.
func (h *PostHandler) dbError(w http.ResponseWriter, r *http.Request, msg string, err error, kv ...interface{}) {
	utils.LoggerFrom(r.Context(), h.Log).Errorw(msg, append(kv, "error", err)...)
	utils.JSONError(w, http.StatusInternalServerError, msgDatabaseError)
}
