package postgres

import (
	"fmt"
	"strings"

	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/domain"
)

// сортировка допускается только по этим колонкам
var orderColumns = map[string]string{
	contracts.OrderByID:       "id",
	contracts.OrderByPrice:    "price",
	contracts.OrderByArea:     "property_area",
	contracts.OrderByBedrooms: "property_bedrooms",
	contracts.OrderByLocation: "lower(property_location)",
}

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId: 1,
		args:  make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

func (qb *queryBuilder) addFloatRange(fieldName string, min, max *float64) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

// build возвращает WHERE-часть и аргументы
func (qb *queryBuilder) build() (string, []interface{}) {
	if len(qb.conditions) == 0 {
		return "", qb.args
	}
	return "WHERE " + strings.Join(qb.conditions, " AND "), qb.args
}

func applyFilters(filter domain.OfferFilter) (string, []interface{}) {
	qb := newQueryBuilder()

	if filter.Kind != nil {
		qb.addCondition("lower(%s) = lower($%d)", "property_kind", *filter.Kind)
	}
	qb.addFloatRange("price", filter.MinPrice, filter.MaxPrice)
	if filter.MinBedrooms != nil {
		qb.addCondition("%s >= $%d", "property_bedrooms", *filter.MinBedrooms)
	}

	return qb.build()
}

// orderClause строит ORDER BY; id добавляется для устойчивого порядка страниц.
func orderClause(order string, desc bool) (string, error) {
	column, ok := orderColumns[order]
	if !ok {
		return "", fmt.Errorf("%w: '%s'", domain.ErrUnknownOrder, order)
	}

	direction := "ASC"
	if desc {
		direction = "DESC"
	}
	if column == "id" {
		return "ORDER BY id " + direction, nil
	}
	return fmt.Sprintf("ORDER BY %s %s, id ASC", column, direction), nil
}
