// Package views содержит HTML-оболочку приложения и шаблоны страниц.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/bootstrap"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	RootName = "App"

	PageOffers     = "offers"
	PageOffer      = "offer"
	PageProperties = "properties"
	PageError      = "error"
)

var printer = message.NewPrinter(language.English)

// FormatPrice форматирует цену с разделителями разрядов: 250000 -> "250,000".
func FormatPrice(price float64) string {
	return printer.Sprintf("%d", int64(math.Round(price)))
}

// FormatArea форматирует площадь в квадратных метрах.
func FormatArea(area float64) string {
	if area == math.Trunc(area) {
		return printer.Sprintf("%d m²", int64(area))
	}
	return fmt.Sprintf("%.1f m²", area)
}

var funcs = template.FuncMap{
	"price": FormatPrice,
	"area":  FormatArea,
}

// Root собирает представление верхнего уровня.
func Root() (bootstrap.RootView, error) {
	shell, err := templatesFS.ReadFile("templates/shell.html")
	if err != nil {
		return bootstrap.RootView{}, fmt.Errorf("views: failed to read shell: %w", err)
	}

	pages, err := template.New(RootName).Funcs(funcs).ParseFS(templatesFS, "templates/pages.html")
	if err != nil {
		return bootstrap.RootView{}, fmt.Errorf("views: failed to parse pages: %w", err)
	}

	return bootstrap.RootView{
		Name:  RootName,
		Shell: string(shell),
		Pages: pages,
	}, nil
}

// RenderPage исполняет шаблон страницы и возвращает готовый фрагмент.
func RenderPage(pages *template.Template, name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("views: failed to render '%s': %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
