package bootstrap

import "html/template"

// RootView - представление верхнего уровня: HTML-оболочка с элементом
// для монтирования и шаблоны страниц для маршрутов.
type RootView struct {
	Name  string
	Shell string
	Pages *template.Template
}
