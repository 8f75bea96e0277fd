package views_test

import (
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

// The temporary page spans two services: the HR service owns the temporary
// collections, the asset-management service only the asset reference
// snapshot. Two separate fakes keep a request to the wrong service visible:
// it would find an empty collection.
func newTemporaryView(t *testing.T) (hr, ams *amstest.Server, v *views.TemporaryView) {
	t.Helper()

	hr = amstest.NewServer()
	hr.Seed("temporary-users",
		map[string]interface{}{"id": int64(801), "name": "Visiting Auditor", "description": "Q3 audit"},
	)
	hr.Seed("temporary-used-records",
		map[string]interface{}{"id": int64(901), "name": "Loaner laptop", "assetId": int64(102), "temporaryUserId": int64(801)},
	)
	hr.Seed("temporary-used-requests",
		map[string]interface{}{"id": int64(1001), "name": "Extend loan", "temporaryUsedRecordId": int64(901), "assetId": int64(102)},
	)
	hrTS := httptest.NewServer(hr.Handler())
	t.Cleanup(hrTS.Close)

	ams = amstest.NewServer()
	amstest.SeedDemo(ams)
	amsTS := httptest.NewServer(ams.Handler())
	t.Cleanup(amsTS.Close)

	hrClient := source.NewClient(hrTS.URL, source.WithHTTPClient(hrTS.Client()))
	amsClient := source.NewClient(amsTS.URL, source.WithHTTPClient(amsTS.Client()))
	v = views.NewTemporaryView(hrClient, amsClient, views.Options{PageSize: 5, Debounce: time.Hour})
	t.Cleanup(v.Close)
	return hr, ams, v
}

func TestTemporaryRowsFromHRResolveAgainstAMS(t *testing.T) {
	_, _, v := newTemporaryView(t)
	require.NoError(t, v.Mount(context.Background(), url.Values{}))

	assert.Equal(t, "temporary-users", v.ActiveTab())
	require.Len(t, v.Users.Rows(), 1)

	require.NoError(t, v.Switch(context.Background(), "record"))
	recs := v.Records.Rows()
	require.Len(t, recs, 1)
	// The asset name comes from the AMS snapshot, the user name from HR.
	assert.Equal(t, "Dell U2720Q", v.RecordAsset(recs[0]))
	assert.Equal(t, "Visiting Auditor", v.RecordUser(recs[0]))

	require.NoError(t, v.Switch(context.Background(), "request"))
	reqs := v.Requests.Rows()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Loaner laptop", v.RequestRecord(reqs[0]))
	assert.Equal(t, "Dell U2720Q", v.RequestAsset(reqs[0]))
}

func TestTemporaryAssetServiceDownDegrades(t *testing.T) {
	_, ams, v := newTemporaryView(t)
	ams.FailWith("assets", http.StatusServiceUnavailable)

	// The HR tabs still mount and render; only resolved asset names degrade.
	require.NoError(t, v.Mount(context.Background(), url.Values{}))
	require.Len(t, v.Users.Rows(), 1)

	require.NoError(t, v.Switch(context.Background(), "record"))
	recs := v.Records.Rows()
	require.NotEmpty(t, recs)
	assert.Equal(t, "N/A", v.RecordAsset(recs[0]))
	assert.Equal(t, "Visiting Auditor", v.RecordUser(recs[0]))
}

func TestTemporaryHRServiceDownFailsMount(t *testing.T) {
	hr, _, v := newTemporaryView(t)
	hr.FailWith("temporary-users", http.StatusServiceUnavailable)

	err := v.Mount(context.Background(), url.Values{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temporary-users unavailable")
}

func TestTemporarySearchAcrossServices(t *testing.T) {
	_, _, v := newTemporaryView(t)
	require.NoError(t, v.Mount(context.Background(), url.Values{}))
	require.NoError(t, v.Switch(context.Background(), "record"))

	// "Dell" only exists on the AMS side; the HR rows match through the
	// resolved asset name.
	v.Search(context.Background(), "dell")
	recs := v.Records.Rows()
	require.Len(t, recs, 1)
	assert.Equal(t, "Loaner laptop", recs[0].Name)

	q := v.Query()
	assert.Equal(t, "record", q.Get("tab"))
	assert.Equal(t, "dell", q.Get("recordSearch"))
}

func TestTemporaryMutationsValidateAndRefresh(t *testing.T) {
	hr, _, v := newTemporaryView(t)
	require.NoError(t, v.Mount(context.Background(), url.Values{}))

	_, err := v.Users.Create(context.Background(), models.TemporaryUser{Name: " "})
	var apiErr *source.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "name: must not be empty", apiErr.Message)
	assert.Len(t, hr.Rows("temporary-users"), 1)

	_, err = v.Users.Create(context.Background(), models.TemporaryUser{Name: "Contractor"})
	require.NoError(t, err)
	assert.Equal(t, 2, v.ActiveState().TotalCount)
}
