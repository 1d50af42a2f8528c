package contracts

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidProperty = errors.New("invalid property")
	ErrInvalidOffer    = errors.New("invalid offer")
)

// Validate проверяет структурные ограничения объекта.
func (p Property) Validate() error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("%w: field 'id' must be positive, got %d", ErrInvalidProperty, p.ID)
	case strings.TrimSpace(p.Kind) == "":
		return fmt.Errorf("%w: field 'kind' is required", ErrInvalidProperty)
	case strings.TrimSpace(p.Location) == "":
		return fmt.Errorf("%w: field 'location' is required", ErrInvalidProperty)
	case p.Bedrooms < 0:
		return fmt.Errorf("%w: field 'bedrooms' must not be negative, got %d", ErrInvalidProperty, p.Bedrooms)
	case p.Area < 0:
		return fmt.Errorf("%w: field 'area' must not be negative, got %v", ErrInvalidProperty, p.Area)
	}
	return nil
}

// Validate проверяет предложение вместе со вложенным объектом.
func (o Offer) Validate() error {
	switch {
	case o.ID <= 0:
		return fmt.Errorf("%w: field 'id' must be positive, got %d", ErrInvalidOffer, o.ID)
	case strings.TrimSpace(o.OfferedBy) == "":
		return fmt.Errorf("%w: field 'offered_by' is required", ErrInvalidOffer)
	case o.Price < 0:
		return fmt.Errorf("%w: field 'price' must not be negative, got %v", ErrInvalidOffer, o.Price)
	}
	if err := o.Property.Validate(); err != nil {
		return fmt.Errorf("%w: property: %w", ErrInvalidOffer, err)
	}
	return nil
}
