// Package schemas хранит JSON-схемы контрактов, которыми обмениваются
// offers-web и listing-service.
package schemas

import "embed"

// SchemasFS содержит все схемы из каталога contracts.
//
//go:embed contracts
var SchemasFS embed.FS

// BaseURL - базовый адрес, под которым схемы регистрируются в компиляторе.
// Ссылки $ref внутри схем указывают на него.
const BaseURL = "https://schemas.hizzle.dev/"
