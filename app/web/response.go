package web

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const (
	// InternalServerErrorMessage is the only body sent for unexpected failures.
	InternalServerErrorMessage = "Internal server error"
	// HomePath is where every successful form submission redirects to.
	HomePath = "/"
)

// Renderer produces the HTML of a named page.
type Renderer interface {
	Render(w io.Writer, page string, data any) error
}

// Render writes page as an HTML response, or a 500 when rendering fails.
func Render(w http.ResponseWriter, r *http.Request, pages Renderer, log *slog.Logger, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Render(w, page, data); err != nil {
		ServerError(w, r, log, "error rendering page", err)
	}
}

// ServerError logs err and answers with a generic 500.
func ServerError(w http.ResponseWriter, r *http.Request, log *slog.Logger, msg string, err error) {
	log.ErrorContext(r.Context(), msg, slog.Any("error", err))
	http.Error(w, InternalServerErrorMessage, http.StatusInternalServerError)
}

// BadRequest logs err and answers with a 400 carrying msg.
func BadRequest(w http.ResponseWriter, r *http.Request, log *slog.Logger, msg string, err error) {
	log.WarnContext(r.Context(), "bad request", slog.String("reason", msg), slog.Any("error", err))
	http.Error(w, msg, http.StatusBadRequest)
}

// RedirectHome sends the client back to the product list.
func RedirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, HomePath, http.StatusFound)
}

// PathID returns the numeric id route parameter. ok is false when the
// parameter is missing or not a valid id; callers treat that like an id
// that does not exist.
func PathID(r *http.Request) (id uint, raw string, ok bool) {
	raw = chi.URLParam(r, "id")
	n, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return 0, raw, false
	}
	return uint(n), raw, true
}
