package contracts

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ключи сортировки, которые понимают оба сервиса.
const (
	OrderByID       = "id"
	OrderByPrice    = "price"
	OrderByArea     = "area"
	OrderByBedrooms = "bedrooms"
	OrderByLocation = "location"
)

// порядок важен: в таком виде варианты показываются пользователю
var orderLabels = []struct {
	key   string
	label string
}{
	{OrderByPrice, "price"},
	{OrderByArea, "living area"},
	{OrderByBedrooms, "bedrooms"},
	{OrderByLocation, "location"},
	{OrderByID, "listing number"},
}

// DefaultOrderOptions возвращает варианты сортировки списка предложений.
func DefaultOrderOptions() []OrderBy {
	caser := cases.Title(language.English)

	options := make([]OrderBy, 0, len(orderLabels))
	for _, l := range orderLabels {
		options = append(options, OrderBy{SortTitle: l.key, Title: caser.String(l.label)})
	}
	return options
}

// IsKnownOrder сообщает, поддерживается ли ключ сортировки.
func IsKnownOrder(sortTitle string) bool {
	for _, l := range orderLabels {
		if l.key == sortTitle {
			return true
		}
	}
	return false
}
