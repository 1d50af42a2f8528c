package listing_client

import "github.com/yuriynekrasov/hizzle/services/offers-web/internal/bootstrap"

func (c *ListingServiceAPIClient) Kind() bootstrap.PluginKind {
	return bootstrap.KindHTTPClient
}

// Install делает клиент доступным всем представлениям через Globals.
func (c *ListingServiceAPIClient) Install(app *bootstrap.App) error {
	return app.Globals().Provide(bootstrap.KindHTTPClient, c)
}
