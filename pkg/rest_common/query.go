package rest_common

import (
	"net/url"
	"strconv"
	"strings"
)

// ParseString возвращает nil для отсутствующего или пустого параметра.
func ParseString(query url.Values, key string) *string {
	val := strings.TrimSpace(query.Get(key))
	if val == "" {
		return nil
	}
	return &val
}

func ParseFloat(query url.Values, key string) *float64 {
	val, err := strconv.ParseFloat(query.Get(key), 64)
	if err != nil {
		return nil
	}
	return &val
}

func ParseInt(query url.Values, key string) *int {
	val, err := strconv.Atoi(query.Get(key))
	if err != nil {
		return nil
	}
	return &val
}

// ParseBool понимает "1", "true", "yes"; все остальное - false.
func ParseBool(query url.Values, key string) bool {
	switch strings.ToLower(query.Get(key)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
