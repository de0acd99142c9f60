package products

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/mytheresa/go-inventory/app/web"
	"github.com/mytheresa/go-inventory/models"
	"github.com/mytheresa/go-inventory/pkg/validator"
)

// MissingFieldsMessage is the 400 body when a create form lacks a field.
const MissingFieldsMessage = "All fields are required"

type ProductProvider interface {
	GetAllProducts(ctx context.Context, withRelations bool) ([]models.Product, error)
	GetProductByID(ctx context.Context, id uint, withRelations bool) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, id uint, u models.ProductUpdate) (int64, error)
	DeleteProduct(ctx context.Context, id uint) (int64, error)
}

type CategoryLister interface {
	GetAllCategories(ctx context.Context, withRelations bool) ([]models.Category, error)
}

type SupplierLister interface {
	GetAllSuppliers(ctx context.Context, withRelations bool) ([]models.Supplier, error)
}

type ProductHandler struct {
	repo       ProductProvider
	categories CategoryLister
	suppliers  SupplierLister
	pages      web.Renderer
	validator  validator.Validator
	log        *slog.Logger
}

func NewProductHandler(
	r ProductProvider,
	categories CategoryLister,
	suppliers SupplierLister,
	pages web.Renderer,
	log *slog.Logger,
) *ProductHandler {
	return &ProductHandler{
		repo:       r,
		categories: categories,
		suppliers:  suppliers,
		pages:      pages,
		validator:  validator.MustNewDefaultValidator(),
		log:        log.With(slog.String("handler", "products")),
	}
}

type createForm struct {
	Name       string `validate:"required"`
	Price      string `validate:"required,decimal"`
	CategoryID string `validate:"required,number"`
	SupplierID string `validate:"required,number"`
}

// updateForm fields are all optional; empty fields are left untouched.
type updateForm struct {
	Name       string
	Price      string `validate:"omitempty,decimal"`
	CategoryID string `validate:"omitempty,number"`
	SupplierID string `validate:"omitempty,number"`
}

// HandleList renders every product with its category and supplier.
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.GetAllProducts(r.Context(), true)
	if err != nil {
		web.ServerError(w, r, h.log, "error fetching products", err)
		return
	}

	web.Render(w, r, h.pages, h.log, web.PageIndex, web.IndexPage{Products: products})
}

func (h *ProductHandler) HandleNew(w http.ResponseWriter, r *http.Request) {
	page, err := h.formPage(r.Context())
	if err != nil {
		web.ServerError(w, r, h.log, "error fetching categories or suppliers", err)
		return
	}

	web.Render(w, r, h.pages, h.log, web.PageAddProduct, page)
}

// HandleEdit renders the edit form. A product that does not exist is
// rendered as an empty form rather than a 404.
func (h *ProductHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := web.PathID(r)

	var product *models.Product
	if ok {
		p, err := h.repo.GetProductByID(r.Context(), id, true)
		switch {
		case errors.Is(err, models.ErrProductNotFound):
		case err != nil:
			web.ServerError(w, r, h.log, "error fetching product for editing", err)
			return
		default:
			product = p
		}
	}

	page, err := h.formPage(r.Context())
	if err != nil {
		web.ServerError(w, r, h.log, "error fetching product for editing", err)
		return
	}
	page.ID = raw
	page.Product = product

	web.Render(w, r, h.pages, h.log, web.PageEditProduct, page)
}

func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		web.BadRequest(w, r, h.log, "Invalid form body", err)
		return
	}

	form := createForm{
		Name:       r.PostFormValue("name"),
		Price:      r.PostFormValue("price"),
		CategoryID: r.PostFormValue("categoryId"),
		SupplierID: r.PostFormValue("supplierId"),
	}
	if err := h.validator.Validate(form); err != nil {
		if !validator.IsValidationError(err) {
			web.ServerError(w, r, h.log, "error validating product form", err)
			return
		}
		msg := MissingFieldsMessage
		if !validator.HasTag(err, "required") {
			msg = "Invalid value: " + validator.Describe(err)
		}
		web.BadRequest(w, r, h.log, msg, err)
		return
	}

	product := &models.Product{
		Name:       form.Name,
		Price:      decimal.RequireFromString(form.Price),
		CategoryID: mustParseID(form.CategoryID),
		SupplierID: mustParseID(form.SupplierID),
	}

	if err := h.repo.CreateProduct(r.Context(), product); err != nil {
		if errors.Is(err, models.ErrValidation) {
			web.BadRequest(w, r, h.log, "Invalid value: "+err.Error(), err)
			return
		}
		web.ServerError(w, r, h.log, "error creating product", err)
		return
	}

	h.log.InfoContext(r.Context(), "product created", slog.Uint64("id", uint64(product.ID)))
	web.RedirectHome(w, r)
}

// HandleUpdate overwrites the submitted fields of a product. Fields left
// empty keep their stored value and an unknown id is a no-op.
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		web.BadRequest(w, r, h.log, "Invalid form body", err)
		return
	}

	id, _, ok := web.PathID(r)
	if !ok {
		web.RedirectHome(w, r)
		return
	}

	form := updateForm{
		Name:       r.PostFormValue("name"),
		Price:      r.PostFormValue("price"),
		CategoryID: r.PostFormValue("categoryId"),
		SupplierID: r.PostFormValue("supplierId"),
	}
	if err := h.validator.Validate(form); err != nil {
		if !validator.IsValidationError(err) {
			web.ServerError(w, r, h.log, "error validating product form", err)
			return
		}
		web.BadRequest(w, r, h.log, "Invalid value: "+validator.Describe(err), err)
		return
	}

	var update models.ProductUpdate
	if form.Name != "" {
		update.Name = &form.Name
	}
	if form.Price != "" {
		price := decimal.RequireFromString(form.Price)
		update.Price = &price
	}
	if form.CategoryID != "" {
		categoryID := mustParseID(form.CategoryID)
		update.CategoryID = &categoryID
	}
	if form.SupplierID != "" {
		supplierID := mustParseID(form.SupplierID)
		update.SupplierID = &supplierID
	}

	if update.IsEmpty() {
		h.log.DebugContext(r.Context(), "empty product update ignored", slog.Uint64("id", uint64(id)))
		web.RedirectHome(w, r)
		return
	}

	n, err := h.repo.UpdateProduct(r.Context(), id, update)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			web.BadRequest(w, r, h.log, "Invalid value: "+err.Error(), err)
			return
		}
		web.ServerError(w, r, h.log, "error updating product", err)
		return
	}

	h.log.InfoContext(r.Context(), "product updated", slog.Uint64("id", uint64(id)), slog.Int64("rows", n))
	web.RedirectHome(w, r)
}

// HandleDelete removes a product. Deleting an unknown id still redirects.
func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := web.PathID(r)
	if !ok {
		web.RedirectHome(w, r)
		return
	}

	n, err := h.repo.DeleteProduct(r.Context(), id)
	if err != nil {
		web.ServerError(w, r, h.log, "error deleting product", err)
		return
	}

	h.log.InfoContext(r.Context(), "product deleted", slog.Uint64("id", uint64(id)), slog.Int64("rows", n))
	web.RedirectHome(w, r)
}

func (h *ProductHandler) formPage(ctx context.Context) (web.ProductFormPage, error) {
	categories, err := h.categories.GetAllCategories(ctx, false)
	if err != nil {
		return web.ProductFormPage{}, err
	}
	suppliers, err := h.suppliers.GetAllSuppliers(ctx, false)
	if err != nil {
		return web.ProductFormPage{}, err
	}
	return web.ProductFormPage{Categories: categories, Suppliers: suppliers}, nil
}

// mustParseID parses a form value already checked by the "number" rule.
func mustParseID(s string) uint {
	n, _ := strconv.ParseUint(s, 10, 0)
	return uint(n)
}
