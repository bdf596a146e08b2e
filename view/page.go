package view

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the storefront pages. Each page is named after its file.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

// PageData is what a storefront page is rendered from
type PageData struct {
	SignedIn bool
	UserID   string
	Texts    map[string]string
	Products []Item
	Cart     []Item
	// CartShown is false until the cart has been fetched at least once
	CartShown bool
	Alerts    []string
	Query     string
	Location  string
	Locations []string
}

// Data snapshots a recorder into page data
func (r *Recorder) Data() PageData {
	products, _ := r.List(ProductList)
	cart, shown := r.List(CartList)
	return PageData{
		Texts:     r.Texts(),
		Products:  products,
		Cart:      cart,
		CartShown: shown,
		Alerts:    r.Alerts(),
	}
}
