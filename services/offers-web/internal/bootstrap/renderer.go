package bootstrap

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Renderer вставляет содержимое страницы в элемент оболочки,
// выбранный при монтировании.
type Renderer struct {
	shell    string
	selector string
}

// NewRenderer проверяет, что в оболочке есть ровно один элемент для монтирования.
func NewRenderer(shell, selector string) (*Renderer, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(shell))
	if err != nil {
		return nil, fmt.Errorf("bootstrap: failed to parse root view shell: %w", err)
	}

	switch n := doc.Find(selector).Length(); n {
	case 0:
		return nil, fmt.Errorf("%w: '%s'", ErrMountTargetNotFound, selector)
	case 1:
	default:
		return nil, fmt.Errorf("bootstrap: selector '%s' matches %d elements, expected one", selector, n)
	}

	return &Renderer{shell: shell, selector: selector}, nil
}

// Selector возвращает селектор элемента монтирования.
func (r *Renderer) Selector() string {
	return r.selector
}

// Render пишет оболочку, у которой содержимое элемента монтирования
// заменено на content, а <title> на title (если он не пустой).
func (r *Renderer) Render(w io.Writer, title string, content template.HTML) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(r.shell))
	if err != nil {
		return fmt.Errorf("bootstrap: failed to parse root view shell: %w", err)
	}

	doc.Find(r.selector).SetHtml(string(content))
	if title != "" {
		doc.Find("title").SetText(title)
	}

	page, err := doc.Html()
	if err != nil {
		return fmt.Errorf("bootstrap: failed to render page: %w", err)
	}
	_, err = io.WriteString(w, page)
	return err
}
