package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yuriynekrasov/hizzle/pkg/contracts"
)

type offerLess func(a, b contracts.Offer) bool

var comparators = map[string]offerLess{
	contracts.OrderByID:       func(a, b contracts.Offer) bool { return a.ID < b.ID },
	contracts.OrderByPrice:    func(a, b contracts.Offer) bool { return a.Price < b.Price },
	contracts.OrderByArea:     func(a, b contracts.Offer) bool { return a.Property.Area < b.Property.Area },
	contracts.OrderByBedrooms: func(a, b contracts.Offer) bool { return a.Property.Bedrooms < b.Property.Bedrooms },
	contracts.OrderByLocation: func(a, b contracts.Offer) bool {
		return strings.ToLower(a.Property.Location) < strings.ToLower(b.Property.Location)
	},
}

// IsSortable сообщает, есть ли локальный компаратор для ключа.
func IsSortable(sortTitle string) bool {
	_, ok := comparators[sortTitle]
	return ok
}

// SortOffers возвращает отсортированную копию. Исходный срез не меняется,
// равные элементы сохраняют исходный порядок.
func SortOffers(offers []contracts.Offer, sortTitle string, desc bool) ([]contracts.Offer, error) {
	less, ok := comparators[sortTitle]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownOrder, sortTitle)
	}

	sorted := make([]contracts.Offer, len(offers))
	copy(sorted, offers)

	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted, nil
}
