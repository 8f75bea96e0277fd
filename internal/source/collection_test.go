package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ams-console/internal/amstest"
	"ams-console/internal/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type location struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newTestService(t *testing.T) (*amstest.Server, *source.Client) {
	t.Helper()
	fake := amstest.NewServer()
	ts := httptest.NewServer(fake.Handler())
	t.Cleanup(ts.Close)
	return fake, source.NewClient(ts.URL, source.WithHTTPClient(ts.Client()))
}

func seedLocations(fake *amstest.Server, n int) {
	for i := 1; i <= n; i++ {
		fake.Seed("locations", map[string]interface{}{"name": "Office " + string(rune('A'+i-1))})
	}
}

func TestListPagedUsesTotalHeaders(t *testing.T) {
	fake, client := newTestService(t)
	seedLocations(fake, 7)
	col := source.NewCollection[location](client, "/locations", "locations")

	page, err := col.List(context.Background(), source.Query{Page: 2, PageSize: 3})
	require.NoError(t, err)

	assert.Len(t, page.Rows, 3)
	assert.Equal(t, 7, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, "Office D", page.Rows[0].Name)
}

func TestListUnpaginatedReturnsEverything(t *testing.T) {
	fake, client := newTestService(t)
	seedLocations(fake, 7)
	col := source.NewCollection[location](client, "/locations", "locations")

	page, err := col.List(context.Background(), source.Query{})
	require.NoError(t, err)

	assert.Len(t, page.Rows, 7)
	assert.Equal(t, 7, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
}

func TestListDegradesWithoutTotalHeaders(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"A"},{"id":2,"name":"B"}]`))
	}))
	defer ts.Close()

	client := source.NewClient(ts.URL, source.WithHTTPClient(ts.Client()))
	col := source.NewCollection[location](client, "/locations", "locations")

	page, err := col.List(context.Background(), source.Query{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)

	// Unpaginated the derived page count is always one.
	page, err = col.List(context.Background(), source.Query{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
}

func TestListRejectsNonArrayResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer ts.Close()

	client := source.NewClient(ts.URL, source.WithHTTPClient(ts.Client()))
	col := source.NewCollection[location](client, "/locations", "locations")

	_, err := col.List(context.Background(), source.Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected response shape")
}

func TestCRUDRoundTrip(t *testing.T) {
	fake, client := newTestService(t)
	col := source.NewCollection[location](client, "/locations", "locations")
	ctx := context.Background()

	created, err := col.Create(ctx, location{Name: "HQ"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := col.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "HQ", got.Name)

	updated, err := col.Update(ctx, created.ID, location{Name: "HQ East"})
	require.NoError(t, err)
	assert.Equal(t, "HQ East", updated.Name)

	require.NoError(t, col.Delete(ctx, created.ID))
	assert.Empty(t, fake.Rows("locations"))

	_, err = col.Get(ctx, created.ID)
	var apiErr *source.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestValidationErrorsDecodeToFieldMessages(t *testing.T) {
	_, client := newTestService(t)
	col := source.NewCollection[location](client, "/locations", "locations")

	_, err := col.Create(context.Background(), location{Name: "   "})
	var apiErr *source.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "name: must not be empty", apiErr.Message)
	assert.Equal(t, []string{"must not be empty"}, apiErr.FieldErrors["name"])
}

func TestForcedFailureDecodesTitle(t *testing.T) {
	fake, client := newTestService(t)
	fake.FailWith("locations", http.StatusServiceUnavailable)
	col := source.NewCollection[location](client, "/locations", "locations")

	_, err := col.List(context.Background(), source.Query{})
	var apiErr *source.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, "locations unavailable", apiErr.Message)

	fake.Restore("locations")
	_, err = col.List(context.Background(), source.Query{})
	assert.NoError(t, err)
}
