package fluentlogger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagPrefix(t *testing.T) {
	prefix, err := TagPrefix(" Offers Web ")
	require.NoError(t, err)
	assert.Equal(t, "hizzle.offers-web", prefix)

	_, err = TagPrefix("")
	assert.Error(t, err)

	_, err = TagPrefix("listing.service")
	assert.Error(t, err)
}

func TestFluentConfigDefaults(t *testing.T) {
	fc, err := Config{Host: "fluent-bit", Service: "listing-service"}.fluentConfig()
	require.NoError(t, err)

	assert.Equal(t, "fluent-bit", fc.FluentHost)
	assert.Equal(t, 24224, fc.FluentPort)
	assert.Equal(t, "hizzle.listing-service", fc.TagPrefix)
	assert.Equal(t, 8*1024*1024, fc.BufferLimit)
	assert.Equal(t, 5, fc.MaxRetry)
	assert.True(t, fc.SubSecondPrecision)
	assert.False(t, fc.Async)
	assert.False(t, fc.ForceStopAsyncSend)
}

func TestFluentConfigAsync(t *testing.T) {
	fc, err := Config{Host: "127.0.0.1", Port: 24225, Service: "offers-web", Async: true, RequestAck: true, MaxRetry: 2}.fluentConfig()
	require.NoError(t, err)

	assert.Equal(t, 24225, fc.FluentPort)
	assert.True(t, fc.Async)
	assert.True(t, fc.ForceStopAsyncSend)
	assert.True(t, fc.RequestAck)
	assert.Equal(t, 2, fc.MaxRetry)
}

func TestFluentConfigErrors(t *testing.T) {
	cases := map[string]Config{
		"no host":     {Service: "offers-web"},
		"no service":  {Host: "fluent-bit"},
		"bad port":    {Host: "fluent-bit", Service: "offers-web", Port: 70000},
		"dotted name": {Host: "fluent-bit", Service: "a.b"},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := cfg.fluentConfig()
			assert.Error(t, err)
		})
	}
}
