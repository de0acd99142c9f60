package suppliers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mytheresa/go-inventory/app/web"
	"github.com/mytheresa/go-inventory/models"
	"github.com/mytheresa/go-inventory/pkg/validator"
)

type SupplierProvider interface {
	CreateSupplier(ctx context.Context, supplier *models.Supplier) error
}

type SupplierHandler struct {
	repo      SupplierProvider
	pages     web.Renderer
	validator validator.Validator
	log       *slog.Logger
}

func NewSupplierHandler(r SupplierProvider, pages web.Renderer, log *slog.Logger) *SupplierHandler {
	return &SupplierHandler{
		repo:      r,
		pages:     pages,
		validator: validator.MustNewDefaultValidator(),
		log:       log.With(slog.String("handler", "suppliers")),
	}
}

type createForm struct {
	Name    string `validate:"required"`
	Contact string
}

func (h *SupplierHandler) HandleNew(w http.ResponseWriter, r *http.Request) {
	web.Render(w, r, h.pages, h.log, web.PageAddSupplier, nil)
}

// HandleCreate stores a new supplier. A submission without a name is
// ignored; an empty contact is stored as absent.
func (h *SupplierHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		web.BadRequest(w, r, h.log, "Invalid form body", err)
		return
	}

	form := createForm{
		Name:    r.PostFormValue("name"),
		Contact: r.PostFormValue("contact"),
	}
	if err := h.validator.Validate(form); err != nil {
		if !validator.IsValidationError(err) {
			web.ServerError(w, r, h.log, "error validating supplier form", err)
			return
		}
		h.log.DebugContext(r.Context(), "supplier not created", slog.String("reason", validator.Describe(err)))
		web.RedirectHome(w, r)
		return
	}

	supplier := &models.Supplier{Name: form.Name}
	if form.Contact != "" {
		supplier.Contact = &form.Contact
	}

	if err := h.repo.CreateSupplier(r.Context(), supplier); err != nil {
		web.ServerError(w, r, h.log, "error creating supplier", err)
		return
	}

	h.log.InfoContext(r.Context(), "supplier created", slog.Uint64("id", uint64(supplier.ID)))
	web.RedirectHome(w, r)
}
