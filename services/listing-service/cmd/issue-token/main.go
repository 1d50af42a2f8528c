// issue-token печатает токен оператора для записи в listing-service.
// Ключ берется из JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	token_adapter "github.com/yuriynekrasov/hizzle/services/listing-service/internal/adapters/jwt"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/domain"
)

func main() {
	subject := flag.String("subject", "operator", "token subject")
	role := flag.String("role", domain.RoleAdmin, "role claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	tokenService, err := token_adapter.NewTokenService(os.Getenv("JWT_SECRET"))
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	token, err := tokenService.GenerateToken(*subject, *role, *ttl)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}
	fmt.Println(token)
}
