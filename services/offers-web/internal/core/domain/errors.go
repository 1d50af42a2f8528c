package domain

import "errors"

var (
	// ErrOfferNotFound - сервис объявлений не знает такого предложения.
	ErrOfferNotFound = errors.New("offer not found")
	// ErrUnknownOrder - ключ сортировки не поддерживается.
	ErrUnknownOrder = errors.New("unknown order")
)
