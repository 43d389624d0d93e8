package web

import (
	"embed"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var tplFS embed.FS

var pages = []string{
	"index", "buy", "sell", "quote", "quoted", "history",
	"login", "register", "change", "apology",
}

func parseTemplates() map[string]*template.Template {
	out := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		out[p] = template.Must(template.New("layout.html").
			Funcs(template.FuncMap{"usd": usd}).
			ParseFS(tplFS, "templates/layout.html", "templates/"+p+".html"))
	}
	return out
}

// usd renders a decimal as US dollars with thousands separators, e.g. $1,234.50.
func usd(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
