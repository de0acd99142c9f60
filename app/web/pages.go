package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"

	"github.com/mytheresa/go-inventory/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names understood by Pages.Render.
const (
	PageIndex       = "index"
	PageAddCategory = "add-category"
	PageAddSupplier = "add-supplier"
	PageAddProduct  = "add-product"
	PageEditProduct = "edit-product"
)

// IndexPage is the model of the product list.
type IndexPage struct {
	Products []models.Product
}

// ProductFormPage is the model of the add and edit product forms.
// Product is nil on the add form and when the edited product does not exist.
type ProductFormPage struct {
	ID         string
	Product    *models.Product
	Categories []models.Category
	Suppliers  []models.Supplier
}

// LayoutPage wraps every page; the rendered page arrives as .Body.
const LayoutPage = "layout"

type layoutData struct {
	Body template.HTML
}

// Pages renders the embedded HTML templates.
type Pages struct {
	engine *html.Engine
}

func NewPages() (*Pages, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("open templates: %w", err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	return &Pages{engine: engine}, nil
}

// Render executes page inside the layout. Nothing is written to w when
// rendering fails.
func (p *Pages) Render(w io.Writer, page string, data any) error {
	if page == LayoutPage {
		return fmt.Errorf("render page %s: layout is not a page", page)
	}

	// The engine's {{embed}} layout prints page errors into the output
	// instead of returning them, so the page is executed on its own first.
	var body bytes.Buffer
	if err := p.engine.Render(&body, page, data); err != nil {
		return fmt.Errorf("render page %s: %w", page, err)
	}

	var buf bytes.Buffer
	//nolint:gosec // body was produced by the html/template engine
	if err := p.engine.Render(&buf, LayoutPage, layoutData{Body: template.HTML(body.String())}); err != nil {
		return fmt.Errorf("render layout for %s: %w", page, err)
	}

	_, err := buf.WriteTo(w)
	return err
}
