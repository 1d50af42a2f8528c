package listing_client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yuriynekrasov/hizzle/pkg/contextkeys"
	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/core/domain"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/core/port"
)

// максимальный размер ответа, который клиент готов прочитать
const maxResponseBytes = 4 << 20

// совпадает с верхней границей perPage в listing-service
const maxPageSize = 200

// ListingServiceAPIClient - HTTP-клиент сервиса объявлений.
// Каждый ответ проверяется по схеме контракта до декодирования.
type ListingServiceAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ port.ListingServicePort = (*ListingServiceAPIClient)(nil)

func NewListingServiceAPIClient(baseURL string, timeout time.Duration) *ListingServiceAPIClient {
	return &ListingServiceAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *ListingServiceAPIClient) doRequest(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set(contextkeys.TraceHeader, traceID)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

// getContract выполняет GET, проверяет статус и тело по контракту и декодирует его в out.
func (c *ListingServiceAPIClient) getContract(ctx context.Context, method, path, contract string, out interface{}) error {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ListingServiceAPIClient",
		"method":    method,
	})

	url := c.baseURL + path
	clientLogger.Debug("Sending request to listing-service", port.Fields{"url": url})

	resp, err := c.doRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		clientLogger.Error("Failed to perform request to listing-service", err, nil)
		return fmt.Errorf("listing-service request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		clientLogger.Error("Failed to read response from listing-service", err, nil)
		return fmt.Errorf("failed to read listing-service response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrOfferNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("listing service returned non-success status code %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
		clientLogger.Error("Received error response from listing-service", err, port.Fields{"status_code": resp.StatusCode})
		return err
	}

	if err := contracts.ValidateJSON(contract, contracts.V1, bodyBytes); err != nil {
		clientLogger.Error("Response violates contract", err, port.Fields{"contract": contract})
		return err
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		clientLogger.Error("Failed to decode response from listing-service", err, nil)
		return fmt.Errorf("failed to decode listing-service response: %w", err)
	}
	return nil
}

// ListOffers обходит страницы GET /api/v1/offers, пока не соберет total предложений
// или не получит пустую страницу. Порядок по id делает страницы стабильными.
func (c *ListingServiceAPIClient) ListOffers(ctx context.Context) ([]contracts.Offer, error) {
	var all []contracts.Offer
	seen := make(map[int64]struct{})

	for pageNum := 1; ; pageNum++ {
		path := fmt.Sprintf("/api/v1/offers?order=%s&page=%d&perPage=%d", contracts.OrderByID, pageNum, maxPageSize)

		var page offerPageResponse
		if err := c.getContract(ctx, "ListOffers", path, contracts.ContractOfferPage, &page); err != nil {
			// 404 на списке - это не "предложение не найдено"
			if errors.Is(err, domain.ErrOfferNotFound) {
				return nil, fmt.Errorf("listing-service offers endpoint not found")
			}
			return nil, err
		}

		added := 0
		for _, o := range page.Data {
			if _, dup := seen[o.ID]; dup {
				continue
			}
			seen[o.ID] = struct{}{}
			all = append(all, o)
			added++
		}

		// страница без новых предложений значит, что сервер не листает дальше
		if added == 0 || len(all) >= page.Total {
			break
		}
	}
	return all, nil
}

// GetOffer запрашивает GET /api/v1/offers/{id}.
func (c *ListingServiceAPIClient) GetOffer(ctx context.Context, offerID int64) (contracts.Offer, error) {
	var offer contracts.Offer
	path := fmt.Sprintf("/api/v1/offers/%d", offerID)
	if err := c.getContract(ctx, "GetOffer", path, contracts.ContractOffer, &offer); err != nil {
		if errors.Is(err, domain.ErrOfferNotFound) {
			return contracts.Offer{}, fmt.Errorf("%w: id %d", domain.ErrOfferNotFound, offerID)
		}
		return contracts.Offer{}, err
	}
	return offer, nil
}

// ListOrderOptions запрашивает GET /api/v1/order-options.
func (c *ListingServiceAPIClient) ListOrderOptions(ctx context.Context) ([]contracts.OrderBy, error) {
	var list orderByListResponse
	if err := c.getContract(ctx, "ListOrderOptions", "/api/v1/order-options", contracts.ContractOrderByList, &list); err != nil {
		if errors.Is(err, domain.ErrOfferNotFound) {
			return nil, fmt.Errorf("listing-service order options endpoint not found")
		}
		return nil, err
	}
	return list.Data, nil
}
