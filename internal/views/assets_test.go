package views_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"ams-console/internal/amstest"
	"ams-console/internal/models"
	"ams-console/internal/source"
	"ams-console/internal/views"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDemoView(t *testing.T) (*amstest.Server, *views.AssetsView) {
	t.Helper()
	fake := amstest.NewServer()
	amstest.SeedDemo(fake)
	ts := httptest.NewServer(fake.Handler())
	t.Cleanup(ts.Close)

	client := source.NewClient(ts.URL, source.WithHTTPClient(ts.Client()))
	v := views.NewAssetsView(client, views.Options{PageSize: 2, Debounce: time.Hour})
	t.Cleanup(v.Close)
	return fake, v
}

func TestMountLoadsPrimaryTab(t *testing.T) {
	_, v := newDemoView(t)

	require.NoError(t, v.Mount(context.Background(), url.Values{}))

	assert.Equal(t, "assets", v.ActiveTab())
	st := v.ActiveState()
	assert.Equal(t, 1, st.Page)
	assert.Equal(t, 2, st.TotalPages)
	assert.Equal(t, 3, st.TotalCount)
	require.Len(t, v.Assets.Rows(), 2)
}

func TestMountSelectsTabFromURL(t *testing.T) {
	_, v := newDemoView(t)

	in, err := url.ParseQuery("tab=asset-type&assetTypePage=2")
	require.NoError(t, err)
	require.NoError(t, v.Mount(context.Background(), in))

	assert.Equal(t, "asset-type", v.ActiveTab())
	assert.Equal(t, 2, v.ActiveState().Page)
	require.Len(t, v.Types.Rows(), 1)
	assert.Equal(t, "Monitor", v.Types.Rows()[0].Name)
}

func TestMountUnknownTabFallsBackToPrimary(t *testing.T) {
	_, v := newDemoView(t)

	in, err := url.ParseQuery("tab=bogus")
	require.NoError(t, err)
	require.NoError(t, v.Mount(context.Background(), in))
	assert.Equal(t, "assets", v.ActiveTab())
}

func TestResolvedNamesPreferSnapshots(t *testing.T) {
	_, v := newDemoView(t)
	require.NoError(t, v.Mount(context.Background(), url.Values{}))

	rows := v.Assets.Rows()
	require.NotEmpty(t, rows)
	thinkpad := rows[0]
	require.Equal(t, "ThinkPad T14", thinkpad.Name)

	assert.Equal(t, "HQ / Floor 1", v.AssetLocation(thinkpad))
	assert.Equal(t, "Northwind Supplies", v.AssetSupplier(thinkpad))
	assert.Equal(t, "Laptop", v.AssetType(thinkpad))
	assert.Equal(t, "INV-2026-0031", v.AssetInvoice(thinkpad))
}

func TestReferenceFailureDegradesToPlaceholder(t *testing.T) {
	fake, v := newDemoView(t)
	fake.FailWith("locations", http.StatusServiceUnavailable)

	// The page still mounts; only the location names degrade.
	require.NoError(t, v.Mount(context.Background(), url.Values{}))

	rows := v.Assets.Rows()
	require.NotEmpty(t, rows)
	assert.Equal(t, "-", v.AssetLocation(rows[0]))
	assert.Equal(t, "Northwind Supplies", v.AssetSupplier(rows[0]))
}

func TestSearchMatchesResolvedNames(t *testing.T) {
	_, v := newDemoView(t)
	require.NoError(t, v.Mount(context.Background(), url.Values{}))

	// "Northwind" appears only in the supplier snapshot, not in any asset
	// field the server filters on its own.
	v.Search(context.Background(), "northwind")

	rows := v.Assets.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "ThinkPad T14", rows[0].Name)

	st := v.ActiveState()
	assert.Equal(t, 1, st.TotalPages)
	assert.Equal(t, 1, st.TotalCount)
}

func TestSwitchReloadsTab(t *testing.T) {
	_, v := newDemoView(t)
	require.NoError(t, v.Mount(context.Background(), url.Values{}))

	require.NoError(t, v.Switch(context.Background(), "status"))
	assert.Equal(t, "status", v.ActiveTab())
	require.Len(t, v.Statuses.Rows(), 2)
	assert.Equal(t, "In Use", v.Statuses.Rows()[0].Status)
}

func TestPageNavigation(t *testing.T) {
	_, v := newDemoView(t)
	require.NoError(t, v.Mount(context.Background(), url.Values{}))

	assert.False(t, v.CanPrev())
	assert.True(t, v.CanNext())

	require.NoError(t, v.NextPage(context.Background()))
	st := v.ActiveState()
	assert.Equal(t, 2, st.Page)
	assert.True(t, v.CanPrev())
	assert.False(t, v.CanNext())

	// Advancing past the last page is a no-op.
	require.NoError(t, v.NextPage(context.Background()))
	assert.Equal(t, 2, v.ActiveState().Page)

	require.NoError(t, v.PrevPage(context.Background()))
	assert.Equal(t, 1, v.ActiveState().Page)
}

func TestQuerySerializesWholePageState(t *testing.T) {
	_, v := newDemoView(t)
	require.NoError(t, v.Mount(context.Background(), url.Values{}))

	require.NoError(t, v.SetPage(context.Background(), 2))
	require.NoError(t, v.Switch(context.Background(), "asset-type"))
	v.Search(context.Background(), "desk")

	q := v.Query()
	assert.Equal(t, "asset-type", q.Get("tab"))
	assert.Equal(t, "desk", q.Get("assetTypeSearch"))
	// The assets tab keeps its own page parameter even while inactive.
	assert.Equal(t, "2", q.Get("page"))
}

func TestQueryOmitsDefaults(t *testing.T) {
	_, v := newDemoView(t)
	require.NoError(t, v.Mount(context.Background(), url.Values{}))
	assert.Empty(t, v.Query().Encode())
}

func TestTableRendersResolvedColumns(t *testing.T) {
	_, v := newDemoView(t)
	require.NoError(t, v.Mount(context.Background(), url.Values{}))

	headers, rows, err := v.Table("assets")
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "Name", "Serial Number", "Type", "Location", "Supplier", "Invoice", "Warranty"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"101", "ThinkPad T14", "SN-T14-001", "Laptop", "HQ / Floor 1", "Northwind Supplies", "INV-2026-0031", "yes"}, rows[0])

	_, _, err = v.Table("bogus")
	assert.Error(t, err)
}

func TestExportWritesWorkbook(t *testing.T) {
	_, v := newDemoView(t)
	require.NoError(t, v.Mount(context.Background(), url.Values{}))

	var buf bytes.Buffer
	require.NoError(t, v.Export("assets", &buf))
	assert.NotZero(t, buf.Len())

	assert.Error(t, v.Export("bogus", &buf))
}

func TestBlankRequiredFieldRejectedWithoutDispatch(t *testing.T) {
	fake, v := newDemoView(t)
	require.NoError(t, v.Mount(context.Background(), url.Values{}))

	_, err := v.Assets.Create(context.Background(), models.Asset{Name: "   "})
	var apiErr *source.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "name: must not be empty", apiErr.Message)
	// The invalid record never reached the server.
	assert.Len(t, fake.Rows("assets"), 3)

	_, err = v.Statuses.Create(context.Background(), models.AssetStatus{Status: ""})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "status: must not be empty", apiErr.Message)
}

func TestMutationRefreshesRows(t *testing.T) {
	_, v := newDemoView(t)
	require.NoError(t, v.Mount(context.Background(), url.Values{}))
	require.Equal(t, 3, v.ActiveState().TotalCount)

	_, err := v.Assets.Create(context.Background(), v.Assets.Rows()[0])
	require.NoError(t, err)
	assert.Equal(t, 4, v.ActiveState().TotalCount)
}
