package cli

import (
	"bufio"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/countryexplorer/internal/client/client"
	"github.com/dmitrijs2005/countryexplorer/internal/client/config"
	"github.com/dmitrijs2005/countryexplorer/internal/client/credentials"
	"github.com/dmitrijs2005/countryexplorer/internal/client/models"
	"github.com/dmitrijs2005/countryexplorer/internal/client/services"
	"github.com/dmitrijs2005/countryexplorer/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

const germanyJSON = `{"cca3":"DEU","name":{"common":"Germany","official":"Federal Republic of Germany"},
"region":"Europe","subregion":"Western Europe","capital":["Berlin"],"population":83240525,
"languages":{"deu":"German"},"borders":["AUT","FRA"],"flags":{"png":"https://flagcdn.com/w320/de.png"}}`

func mustCountry(t *testing.T, doc string) models.Country {
	t.Helper()
	var c models.Country
	require.NoError(t, c.UnmarshalJSON([]byte(doc)))
	return c
}

type fakeCatalogService struct {
	countries []models.Country
	err       error
	calls     []string
}

func (f *fakeCatalogService) Browse(ctx context.Context) ([]models.Country, error) {
	f.calls = append(f.calls, "browse")
	return f.countries, f.err
}

func (f *fakeCatalogService) Search(ctx context.Context, query string) ([]models.Country, error) {
	f.calls = append(f.calls, "search:"+query)
	return f.countries, f.err
}

func (f *fakeCatalogService) Filter(ctx context.Context, region string) ([]models.Country, error) {
	f.calls = append(f.calls, "filter:"+region)
	if _, err := models.ParseRegion(region); region != "" && err != nil {
		return nil, err
	}
	return f.countries, f.err
}

func (f *fakeCatalogService) Details(ctx context.Context, code string) (models.Country, error) {
	f.calls = append(f.calls, "details:"+code)
	if f.err != nil {
		return models.Country{}, f.err
	}
	for _, c := range f.countries {
		if c.Code == code {
			return c, nil
		}
	}
	return models.Country{}, client.ErrNotFound
}

func newTestApp(t *testing.T, catalog services.CatalogService) *App {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "countries.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &App{
		db:      db,
		logger:  logging.Nop(),
		session: services.NewSessionService(db, credentials.Plain{}, logging.Nop()),
		catalog: catalog,
		reader:  bufio.NewReader(strings.NewReader("")),
	}
}

func stubInputs(t *testing.T, username, password string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return username, nil }
	getPassword = func(_ *bufio.Reader, _ io.Writer) (string, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

// ---- tests ----

func TestApp_GetStatus(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, &fakeCatalogService{})

	assert.Equal(t, "(loading)", a.getStatus())

	require.NoError(t, a.session.Restore(ctx))
	assert.Equal(t, "", a.getStatus())

	_, err := a.session.Register(ctx, "amy", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "(amy)", a.getStatus())
}

func TestApp_RegisterLoginLogout(t *testing.T) {
	ctx := context.Background()
	out := captureOutput(t)
	a := newTestApp(t, &fakeCatalogService{})

	stubInputs(t, "amy", "pw1")
	require.NoError(t, a.Register(ctx))
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Welcome, amy!")

	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.isLoggedIn())

	out.Reset()
	require.Error(t, a.Register(ctx))
	assert.Contains(t, out.String(), "Username already exists")

	out.Reset()
	stubInputs(t, "amy", "wrong")
	require.ErrorIs(t, a.Login(ctx), services.ErrInvalidCredentials)
	assert.Contains(t, out.String(), "Invalid username or password")
	assert.False(t, a.isLoggedIn())

	stubInputs(t, "amy", "pw1")
	require.NoError(t, a.Login(ctx))
	assert.True(t, a.isLoggedIn())
}

func TestApp_RegisterRequiresInput(t *testing.T) {
	out := captureOutput(t)
	a := newTestApp(t, &fakeCatalogService{})

	stubInputs(t, "", "")
	require.ErrorIs(t, a.Register(context.Background()), services.ErrInvalidInput)
	assert.Contains(t, out.String(), "Username and password are required")
}

func TestApp_ListingCommands(t *testing.T) {
	ctx := context.Background()
	out := captureOutput(t)
	fc := &fakeCatalogService{countries: []models.Country{mustCountry(t, germanyJSON)}}
	a := newTestApp(t, fc)

	require.NoError(t, a.All(ctx))
	require.NoError(t, a.Search(ctx, "germ"))
	require.NoError(t, a.Region(ctx, "europe"))

	assert.Equal(t, []string{"browse", "search:germ", "filter:europe"}, fc.calls)
	assert.Equal(t, 3, strings.Count(out.String(), "DEU  Germany"))
	assert.Contains(t, out.String(), "capital: Berlin")
	assert.Contains(t, out.String(), "population: 83,240,525")
}

func TestApp_SearchWithoutMatches(t *testing.T) {
	ctx := context.Background()
	out := captureOutput(t)

	a := newTestApp(t, &fakeCatalogService{countries: []models.Country{}})
	require.NoError(t, a.Search(ctx, "zzz"))
	assert.Contains(t, out.String(), `No countries found matching "zzz"`)

	out.Reset()
	a = newTestApp(t, &fakeCatalogService{err: &client.TransportError{Op: "by-name", StatusCode: 404}})
	require.NoError(t, a.Search(ctx, "zzz"))
	assert.Contains(t, out.String(), `No countries found matching "zzz"`)
}

func TestApp_CatalogFailures(t *testing.T) {
	ctx := context.Background()
	out := captureOutput(t)

	a := newTestApp(t, &fakeCatalogService{err: &client.TransportError{Op: "all", StatusCode: 500}})
	require.Error(t, a.All(ctx))
	assert.Contains(t, out.String(), "Failed to fetch countries. Please try again later.")

	out.Reset()
	a = newTestApp(t, &fakeCatalogService{})
	require.ErrorIs(t, a.Region(ctx, "Atlantis"), client.ErrUnknownRegion)
	assert.Contains(t, out.String(), "Unknown region. Choose one of: Africa, Americas, Asia, Europe, Oceania")
}

func TestApp_Show(t *testing.T) {
	ctx := context.Background()
	out := captureOutput(t)
	a := newTestApp(t, &fakeCatalogService{countries: []models.Country{mustCountry(t, germanyJSON)}})

	require.NoError(t, a.Show(ctx, "DEU"))
	got := out.String()
	assert.Contains(t, got, "Germany (DEU)")
	assert.Contains(t, got, "Official name: Federal Republic of Germany")
	assert.Contains(t, got, "Languages:     German")
	assert.Contains(t, got, "Borders:       AUT, FRA")
	assert.Contains(t, got, "Favorite:      no")

	out.Reset()
	require.ErrorIs(t, a.Show(ctx, "XXX"), client.ErrNotFound)
	assert.Contains(t, out.String(), "Country not found: XXX")
}

func TestApp_FavoritesRequireLogin(t *testing.T) {
	ctx := context.Background()
	out := captureOutput(t)
	fc := &fakeCatalogService{countries: []models.Country{mustCountry(t, germanyJSON)}}
	a := newTestApp(t, fc)

	require.ErrorIs(t, a.Favorites(ctx), services.ErrNotAuthenticated)
	require.ErrorIs(t, a.Fav(ctx, "DEU"), services.ErrNotAuthenticated)
	require.ErrorIs(t, a.Unfav(ctx, "DEU"), services.ErrNotAuthenticated)

	assert.Equal(t, 3, strings.Count(out.String(), "You must be logged in to manage favorites"))
	assert.Empty(t, fc.calls, "no catalog lookup when signed out")
}

func TestApp_FavAndUnfav(t *testing.T) {
	ctx := context.Background()
	out := captureOutput(t)
	fc := &fakeCatalogService{countries: []models.Country{mustCountry(t, germanyJSON)}}
	a := newTestApp(t, fc)

	_, err := a.session.Register(ctx, "amy", "pw1")
	require.NoError(t, err)

	require.NoError(t, a.Favorites(ctx))
	assert.Contains(t, out.String(), "No favorites yet")

	require.NoError(t, a.Fav(ctx, "deu"))
	assert.Contains(t, out.String(), "Added Germany to favorites")
	assert.True(t, a.session.IsFavorite("DEU"))

	favs := a.session.Favorites()
	require.Len(t, favs, 1)
	assert.JSONEq(t, germanyJSON, string(favs[0].Raw), "full catalog document stored")

	out.Reset()
	require.NoError(t, a.Fav(ctx, "DEU"))
	assert.Contains(t, out.String(), "DEU is already a favorite")
	assert.Equal(t, []string{"details:DEU"}, fc.calls)

	out.Reset()
	require.NoError(t, a.Favorites(ctx))
	assert.Contains(t, out.String(), "* DEU  Germany")

	out.Reset()
	require.NoError(t, a.Unfav(ctx, "DEU"))
	assert.Contains(t, out.String(), "Removed DEU from favorites")
	assert.False(t, a.session.IsFavorite("DEU"))

	out.Reset()
	require.NoError(t, a.Unfav(ctx, "DEU"))
	assert.Contains(t, out.String(), "DEU is not a favorite")
}

func TestApp_FavUnknownCode(t *testing.T) {
	ctx := context.Background()
	out := captureOutput(t)
	a := newTestApp(t, &fakeCatalogService{})

	_, err := a.session.Register(ctx, "amy", "pw1")
	require.NoError(t, err)

	require.ErrorIs(t, a.Fav(ctx, "XXX"), client.ErrNotFound)
	assert.Contains(t, out.String(), "Country not found: XXX")
	assert.Empty(t, a.session.Favorites())
}

func TestNewApp_WiresServices(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "nested", "countries.db")
	cfg.CredentialScheme = credentials.SchemeArgon2

	a, err := NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.db.Close() })

	assert.NotNil(t, a.session)
	assert.NotNil(t, a.catalog)
	assert.False(t, a.isLoggedIn())
	assert.FileExists(t, cfg.DatabasePath)
}

func TestIsFilePath(t *testing.T) {
	assert.True(t, isFilePath("countries.db"))
	assert.True(t, isFilePath("/var/lib/app/countries.db"))
	assert.False(t, isFilePath(":memory:"))
	assert.False(t, isFilePath("file:countries.db?cache=shared"))
	assert.False(t, isFilePath(""))
}

func TestNewApp_RejectsBadSettings(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "countries.db")

	cfg.CredentialScheme = "rot13"
	_, err := NewApp(cfg)
	require.ErrorIs(t, err, credentials.ErrUnknownScheme)

	cfg.CredentialScheme = credentials.SchemePlain
	cfg.LogLevel = "loud"
	_, err = NewApp(cfg)
	require.Error(t, err)
}
