package renderer

import (
	"html/template"

	"github.com/mkhalid-dev/rukhsar-storefront/app/utils/format"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

func New() *render.Render {
	return render.New(render.Options{
		Layout:     "layout",
		Extensions: []string{".html"},
		Funcs: []template.FuncMap{
			{
				"rupees": func(d decimal.Decimal) string {
					return format.Rupees(d)
				},
				"add": func(a, b int) int { return a + b },
				"sub": func(a, b int) int { return a - b },
			},
		},
	})
}
