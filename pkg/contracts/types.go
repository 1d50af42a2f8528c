// Package contracts описывает данные, которыми обмениваются клиентское
// приложение и сервис объявлений: OrderBy, Property, Offer.
package contracts

// OrderBy - пара "ключ сортировки / подпись" для сортируемого списка.
type OrderBy struct {
	SortTitle string `json:"sortTitle"`
	Title     string `json:"title"`
}

// Property - один объект недвижимости. ID - его постоянный идентификатор.
type Property struct {
	ID       int64   `json:"id"`
	Kind     string  `json:"kind"`
	Location string  `json:"location"`
	Bedrooms int     `json:"bedrooms"`
	Area     float64 `json:"area"`
}

// Offer - ценовое предложение по одному объекту.
// Property хранится по значению: это снимок объекта на момент публикации.
type Offer struct {
	ID        int64    `json:"id"`
	OfferedBy string   `json:"offered_by"`
	Price     float64  `json:"price"`
	Property  Property `json:"property"`
}
