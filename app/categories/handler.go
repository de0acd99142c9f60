package categories

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mytheresa/go-inventory/app/web"
	"github.com/mytheresa/go-inventory/models"
	"github.com/mytheresa/go-inventory/pkg/validator"
)

type CategoryProvider interface {
	CreateCategory(ctx context.Context, category *models.Category) error
}

type CategoryHandler struct {
	repo      CategoryProvider
	pages     web.Renderer
	validator validator.Validator
	log       *slog.Logger
}

func NewCategoryHandler(r CategoryProvider, pages web.Renderer, log *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		repo:      r,
		pages:     pages,
		validator: validator.MustNewDefaultValidator(),
		log:       log.With(slog.String("handler", "categories")),
	}
}

type createForm struct {
	Name string `validate:"required"`
}

func (h *CategoryHandler) HandleNew(w http.ResponseWriter, r *http.Request) {
	web.Render(w, r, h.pages, h.log, web.PageAddCategory, nil)
}

// HandleCreate stores a new category. A submission without a name is
// ignored and still redirects to the product list.
func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		web.BadRequest(w, r, h.log, "Invalid form body", err)
		return
	}

	form := createForm{Name: r.PostFormValue("name")}
	if err := h.validator.Validate(form); err != nil {
		if !validator.IsValidationError(err) {
			web.ServerError(w, r, h.log, "error validating category form", err)
			return
		}
		h.log.DebugContext(r.Context(), "category not created", slog.String("reason", validator.Describe(err)))
		web.RedirectHome(w, r)
		return
	}

	category := &models.Category{Name: form.Name}
	if err := h.repo.CreateCategory(r.Context(), category); err != nil {
		web.ServerError(w, r, h.log, "error creating category", err)
		return
	}

	h.log.InfoContext(r.Context(), "category created", slog.Uint64("id", uint64(category.ID)))
	web.RedirectHome(w, r)
}
