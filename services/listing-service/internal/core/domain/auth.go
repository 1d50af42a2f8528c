package domain

import "errors"

var ErrTokenInvalid = errors.New("token is invalid or expired")

// RoleAdmin - роль, которой разрешено публиковать и снимать предложения.
const RoleAdmin = "admin"

type Claims struct {
	Subject string
	Role    string
}
