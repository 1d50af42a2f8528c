package bootstrap

import (
	"context"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testShell = `<!DOCTYPE html><html><head><title>hizzle</title></head><body><div id="app"></div></body></html>`

type fakePlugin struct {
	kind       PluginKind
	installErr error
	installs   int
	closed     *[]PluginKind
}

func (p *fakePlugin) Kind() PluginKind { return p.kind }

func (p *fakePlugin) Install(app *App) error {
	p.installs++
	if p.installErr != nil {
		return p.installErr
	}
	return app.Globals().Provide(p.kind, p)
}

func (p *fakePlugin) Close() error {
	if p.closed != nil {
		*p.closed = append(*p.closed, p.kind)
	}
	return nil
}

type fakeRouter struct {
	fakePlugin
}

func (r *fakeRouter) Install(app *App) error {
	r.installs++
	if !app.Globals().Has(KindStore) {
		return errors.New("store is required")
	}
	return app.Globals().Provide(KindRouter, r)
}

func (r *fakeRouter) Handler(renderer *Renderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_ = renderer.Render(w, "Offers", template.HTML("<p>hello</p>"))
	})
}

func newPlugins(closed *[]PluginKind) (*fakePlugin, *fakeRouter, *fakePlugin) {
	return &fakePlugin{kind: KindStore, closed: closed},
		&fakeRouter{fakePlugin{kind: KindRouter, closed: closed}},
		&fakePlugin{kind: KindHTTPClient, closed: closed}
}

func newTestApp() *App {
	return CreateApp(RootView{Name: "App", Shell: testShell}, WithHostConfig(HostConfig{Addr: "127.0.0.1:0"}))
}

func TestBootstrapMountsAfterAllCapabilities(t *testing.T) {
	var closed []PluginKind
	st, router, client := newPlugins(&closed)

	app := newTestApp().Use(st).Use(router).Use(client)
	require.NoError(t, app.Err())
	assert.Equal(t, []PluginKind{KindStore, KindRouter, KindHTTPClient}, app.Installed())

	require.NoError(t, app.Mount(context.Background(), "#app"))
	assert.True(t, app.Mounted())
	assert.Equal(t, 1, st.installs)
	assert.Equal(t, 1, router.installs)
	assert.Equal(t, 1, client.installs)

	resp, err := http.Get("http://" + app.Host().Addr() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	page := string(body)
	assert.Contains(t, page, `<div id="app"><p>hello</p></div>`)
	assert.Contains(t, page, "<title>Offers</title>")

	require.NoError(t, app.Unmount(context.Background()))
	assert.False(t, app.Mounted())
	assert.Equal(t, []PluginKind{KindHTTPClient, KindRouter, KindStore}, closed, "closed in reverse order")
}

func TestMountRefusesWhenCapabilityIsSkipped(t *testing.T) {
	st, router, _ := newPlugins(nil)

	app := newTestApp().Use(st).Use(router)
	err := app.Mount(context.Background(), "#app")

	assert.ErrorIs(t, err, ErrMissingCapability)
	assert.False(t, app.Mounted())
	assert.Nil(t, app.Host(), "nothing is started")
}

func TestUseOutOfOrder(t *testing.T) {
	st, router, client := newPlugins(nil)

	app := newTestApp().Use(router).Use(st).Use(client)

	assert.ErrorIs(t, app.Err(), ErrPluginOrder)
	assert.Empty(t, app.Installed())
	assert.Equal(t, 0, router.installs, "out-of-order plugin is not installed")
	assert.Equal(t, 0, st.installs, "chain stops at the first error")
	assert.ErrorIs(t, app.Mount(context.Background(), "#app"), ErrPluginOrder)

	app = newTestApp().Use(st).Use(client)
	assert.ErrorIs(t, app.Err(), ErrPluginOrder)
}

func TestUseSameCapabilityTwice(t *testing.T) {
	st, _, _ := newPlugins(nil)

	app := newTestApp().Use(st).Use(st)
	assert.ErrorIs(t, app.Err(), ErrAlreadyInstalled)
	assert.Equal(t, 1, st.installs)
}

func TestUseUnknownPlugin(t *testing.T) {
	app := newTestApp().Use(&fakePlugin{kind: "i18n"})
	assert.ErrorIs(t, app.Err(), ErrUnknownPlugin)
}

func TestInstallErrorIsLatched(t *testing.T) {
	boom := errors.New("boom")
	st := &fakePlugin{kind: KindStore, installErr: boom}
	_, router, _ := newPlugins(nil)

	app := newTestApp().Use(st).Use(router)

	assert.ErrorIs(t, app.Err(), boom)
	assert.Equal(t, 0, router.installs)
	assert.ErrorIs(t, app.Mount(context.Background(), "#app"), boom)
}

func TestMountTargetNotFound(t *testing.T) {
	st, router, client := newPlugins(nil)

	app := newTestApp().Use(st).Use(router).Use(client)
	err := app.Mount(context.Background(), "#missing")

	assert.ErrorIs(t, err, ErrMountTargetNotFound)
	assert.False(t, app.Mounted())
}

func TestMountTwiceAndUseAfterMount(t *testing.T) {
	st, router, client := newPlugins(nil)

	app := newTestApp().Use(st).Use(router).Use(client)
	require.NoError(t, app.Mount(context.Background(), "#app"))
	defer func() { _ = app.Unmount(context.Background()) }()

	assert.ErrorIs(t, app.Mount(context.Background(), "#app"), ErrAlreadyMounted)

	app.Use(&fakePlugin{kind: KindStore})
	assert.ErrorIs(t, app.Err(), ErrAlreadyMounted)
}

func TestMountAfterUnmount(t *testing.T) {
	var closed []PluginKind
	st, router, client := newPlugins(&closed)

	app := newTestApp().Use(st).Use(router).Use(client)
	require.NoError(t, app.Mount(context.Background(), "#app"))
	require.NoError(t, app.Unmount(context.Background()))

	// плагины уже закрыты, повторный запуск отдал бы закрытые хранилище и клиент
	assert.ErrorIs(t, app.Mount(context.Background(), "#app"), ErrAlreadyMounted)
	assert.False(t, app.Mounted())
	assert.ErrorIs(t, app.Unmount(context.Background()), ErrNotMounted)
	assert.Len(t, closed, 3, "plugins are closed once")
}

func TestUnmountBeforeMount(t *testing.T) {
	assert.ErrorIs(t, newTestApp().Unmount(context.Background()), ErrNotMounted)
}

func TestGlobalsProvideTwice(t *testing.T) {
	g := newGlobals()
	require.NoError(t, g.Provide(KindStore, "store"))
	assert.ErrorIs(t, g.Provide(KindStore, "other"), ErrAlreadyInstalled)

	v, ok := g.Lookup(KindStore)
	assert.True(t, ok)
	assert.Equal(t, "store", v)
	assert.False(t, g.Has(KindRouter))
	assert.Error(t, g.Provide(KindRouter, nil))
}

func TestRenderer(t *testing.T) {
	_, err := NewRenderer(`<div class="x"></div><div class="x"></div>`, ".x")
	assert.Error(t, err, "ambiguous mount target")

	r, err := NewRenderer(testShell, "#app")
	require.NoError(t, err)
	assert.Equal(t, "#app", r.Selector())

	var sb strings.Builder
	require.NoError(t, r.Render(&sb, "", template.HTML(`<ul><li>1</li></ul>`)))
	assert.Contains(t, sb.String(), `<div id="app"><ul><li>1</li></ul></div>`)
	assert.Contains(t, sb.String(), "<title>hizzle</title>", "title kept when empty")

	sb.Reset()
	require.NoError(t, r.Render(&sb, "Second", template.HTML(`<p>2</p>`)))
	assert.NotContains(t, sb.String(), "<li>1</li>", "each render starts from a clean shell")
}

func TestInstallOrderIsCopy(t *testing.T) {
	order := InstallOrder()
	order[0] = "changed"
	assert.Equal(t, KindStore, InstallOrder()[0])
}
