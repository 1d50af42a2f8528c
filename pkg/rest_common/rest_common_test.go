package rest_common

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuriynekrasov/hizzle/pkg/contextkeys"
	"github.com/yuriynekrasov/hizzle/pkg/logger"
)

func TestWriteJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSONError(rec, http.StatusNotFound, "offer not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "offer not found", body["error"])
}

func TestRespondWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithJSON(rec, http.StatusCreated, map[string]int{"id": 1})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())
}

func TestLoggerMiddlewareKeepsValidTraceID(t *testing.T) {
	incoming := uuid.New().String()
	var seenTrace string
	var seenLogger logger.LoggerPort

	h := LoggerMiddleware(logger.NoopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTrace = contextkeys.TraceIDFromContext(r.Context())
		seenLogger = contextkeys.LoggerFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/offers", nil)
	req.Header.Set(contextkeys.TraceHeader, incoming)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, incoming, seenTrace)
	assert.Equal(t, incoming, rec.Header().Get(contextkeys.TraceHeader))
	assert.NotNil(t, seenLogger)
}

func TestLoggerMiddlewareReplacesInvalidTraceID(t *testing.T) {
	var seenTrace string
	h := LoggerMiddleware(logger.NoopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTrace = contextkeys.TraceIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(contextkeys.TraceHeader, "not-a-uuid")
	h.ServeHTTP(httptest.NewRecorder(), req)

	_, err := uuid.Parse(seenTrace)
	assert.NoError(t, err)
	assert.NotEqual(t, "not-a-uuid", seenTrace)
}

func TestQueryParsers(t *testing.T) {
	q := url.Values{
		"kind":     {" house "},
		"minPrice": {"1000.5"},
		"bedrooms": {"3"},
		"desc":     {"TRUE"},
		"bad":      {"x"},
	}

	require.NotNil(t, ParseString(q, "kind"))
	assert.Equal(t, "house", *ParseString(q, "kind"))
	assert.Nil(t, ParseString(q, "missing"))

	require.NotNil(t, ParseFloat(q, "minPrice"))
	assert.Equal(t, 1000.5, *ParseFloat(q, "minPrice"))
	assert.Nil(t, ParseFloat(q, "bad"))

	require.NotNil(t, ParseInt(q, "bedrooms"))
	assert.Equal(t, 3, *ParseInt(q, "bedrooms"))
	assert.Nil(t, ParseInt(q, "bad"))

	assert.True(t, ParseBool(q, "desc"))
	assert.False(t, ParseBool(q, "bad"))
}
