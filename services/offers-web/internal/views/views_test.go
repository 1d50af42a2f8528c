package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/bootstrap"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "250,000", FormatPrice(250000))
	assert.Equal(t, "1,234,568", FormatPrice(1234567.6))
	assert.Equal(t, "0", FormatPrice(0))
}

func TestFormatArea(t *testing.T) {
	assert.Equal(t, "120 m²", FormatArea(120))
	assert.Equal(t, "45.5 m²", FormatArea(45.5))
}

func TestRootHasMountTarget(t *testing.T) {
	root, err := Root()
	require.NoError(t, err)
	assert.Equal(t, RootName, root.Name)

	_, err = bootstrap.NewRenderer(root.Shell, "#app")
	assert.NoError(t, err)
}

func TestRenderOfferPage(t *testing.T) {
	root, err := Root()
	require.NoError(t, err)

	offer := contracts.Offer{
		ID: 1, OfferedBy: "Alice", Price: 250000,
		Property: contracts.Property{ID: 10, Kind: "house", Location: "Springfield", Bedrooms: 3, Area: 120},
	}
	html, err := RenderPage(root.Pages, PageOffer, offer)
	require.NoError(t, err)

	assert.Contains(t, string(html), "house in Springfield")
	assert.Contains(t, string(html), "250,000")
	assert.Contains(t, string(html), "Alice")
}

func TestRenderUnknownPage(t *testing.T) {
	root, err := Root()
	require.NoError(t, err)

	_, err = RenderPage(root.Pages, "missing", nil)
	assert.Error(t, err)
}
