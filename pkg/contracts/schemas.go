package contracts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yuriynekrasov/hizzle/schemas"
)

// Имена контрактов (ключ схемы = имя/версия).
const (
	ContractProperty     = "PropertyContract"
	ContractOffer        = "OfferContract"
	ContractOrderBy      = "OrderByContract"
	ContractOfferPage    = "OfferPageContract"
	ContractOrderByList  = "OrderByListContract"
	ContractPropertyList = "PropertyListContract"
	ContractOfferEvent   = "OfferEventContract"

	V1 = "1.0.0"
)

// ErrContractViolation возвращается, когда тело сообщения не соответствует схеме.
var ErrContractViolation = errors.New("contract violation")

const schemasRoot = "contracts"

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	var paths []string
	// Сначала регистрируем все схемы как ресурсы, чтобы работали $ref между ними
	err := fs.WalkDir(schemas.SchemasFS, schemasRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := schemas.SchemasFS.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := compiler.AddResource(schemas.BaseURL+path, file); err != nil {
			return fmt.Errorf("add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		log.Fatalf("contracts: error walking schema resources: %v", err)
	}

	for _, path := range paths {
		schema, err := compiler.Compile(schemas.BaseURL + path)
		if err != nil {
			log.Fatalf("contracts: could not compile schema %s: %v", path, err)
		}
		compiledSchemas[contractKeyFromPath(path)] = schema
	}
}

// contractKeyFromPath преобразует "contracts/offer-page/v1.json"
// в "OfferPageContract/1.0.0".
func contractKeyFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, schemasRoot+"/")
	trimmed = strings.TrimSuffix(trimmed, ".json")

	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[0], "-") {
		name.WriteString(caser.String(p))
	}
	name.WriteString("Contract")

	version := strings.TrimPrefix(parts[1], "v") + ".0.0"
	return name.String() + "/" + version
}

// ValidateJSON проверяет тело сообщения по схеме контракта.
func ValidateJSON(contract, version string, body []byte) error {
	key := contract + "/" + version
	schema, ok := compiledSchemas[key]
	if !ok {
		return fmt.Errorf("schema for contract '%s' version '%s' not found", contract, version)
	}

	// json.Number сохраняет целые без потери точности: 1e20 не превратится в float64
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: body is not a valid JSON: %v", ErrContractViolation, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data after JSON value", ErrContractViolation)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrContractViolation, key, err)
	}
	return nil
}

// DecodeOffer проверяет тело по схеме Offer и декодирует его.
func DecodeOffer(body []byte) (Offer, error) {
	var offer Offer
	if err := ValidateJSON(ContractOffer, V1, body); err != nil {
		return offer, err
	}
	if err := json.Unmarshal(body, &offer); err != nil {
		return offer, fmt.Errorf("%w: failed to decode offer: %v", ErrContractViolation, err)
	}
	return offer, nil
}
