package storefront

import (
	"fmt"
	"io"
	"text/tabwriter"
	"text/template"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"money": func(d decimal.Decimal) string { return "$" + d.StringFixed(2) },
}).Parse(`Product Listing
{{range .Products}}{{.ID}}	{{.Name}}	{{money .Price}}
{{end}}
Your Cart
{{if not .Items}}Your cart is empty
{{else}}{{range .Items}}{{.ID}}	{{.Name}}	{{money .Price}}	x {{.Quantity}}
{{end}}
Subtotal: {{money .Subtotal}}
{{end}}`))

type pageView struct {
	Products []models.Product
	Items    []models.CartItem
	Subtotal decimal.Decimal
}

// Render writes the product listing and the cart in a tab-aligned text layout
func (s *Session) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	view := pageView{
		Products: s.products,
		Items:    s.cart.items,
		Subtotal: s.Subtotal(),
	}
	if err := pageTemplate.Execute(tw, view); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return tw.Flush()
}
