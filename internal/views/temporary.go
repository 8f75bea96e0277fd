package views

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"ams-console/internal/listview"
	"ams-console/internal/models"
	"ams-console/internal/source"
	"ams-console/pkg/export"
)

// TemporaryView is the HR page for temporary users, used records and
// requests. Temporary data lives on the HR service; asset names are
// resolved against the asset-management service.
type TemporaryView struct {
	View

	Users    *listview.Controller[models.TemporaryUser]
	Records  *listview.Controller[models.TemporaryUsedRecord]
	Requests *listview.Controller[models.TemporaryUsedRequest]

	opts Options

	usersCol   *source.Collection[models.TemporaryUser]
	recordsCol *source.Collection[models.TemporaryUsedRecord]
	assetsCol  *source.Collection[models.Asset]

	assetNames  *listview.Resolver
	userNames   *listview.Resolver
	recordNames *listview.Resolver
}

// NewTemporaryView builds the page. hr serves the temporary collections,
// ams the asset reference collection.
func NewTemporaryView(hr, ams *source.Client, opts Options) *TemporaryView {
	v := &TemporaryView{opts: opts}

	v.assetNames = listview.EmptyResolver(maintenancePlaceholder)
	v.userNames = listview.EmptyResolver(maintenancePlaceholder)
	v.recordNames = listview.EmptyResolver(maintenancePlaceholder)

	v.usersCol = source.NewCollection[models.TemporaryUser](hr, "/temporary-users", "temporary-users")
	v.recordsCol = source.NewCollection[models.TemporaryUsedRecord](hr, "/temporary-used-records", "temporary-used-records")
	requestsCol := source.NewCollection[models.TemporaryUsedRequest](hr, "/temporary-used-requests", "temporary-used-requests")
	v.assetsCol = source.NewCollection[models.Asset](ams, "/assets", "assets")

	v.Users = listview.NewController[models.TemporaryUser](v.usersCol, listview.Options[models.TemporaryUser]{
		Tab: "temporary-users", Primary: true,
		PageSize: opts.PageSize, Debounce: opts.Debounce, Logger: opts.logger(),
		Mutator: v.usersCol,
		Validate: func(u models.TemporaryUser) map[string][]string {
			return listview.RequireFields(map[string]string{"name": u.Name})
		},
		Match: func(u models.TemporaryUser, needle string) bool {
			return listview.MatchFields(needle, u.Name, deref(u.Description))
		},
	})
	v.Records = listview.NewController[models.TemporaryUsedRecord](v.recordsCol, listview.Options[models.TemporaryUsedRecord]{
		Tab:      "record",
		PageSize: opts.PageSize, Debounce: opts.Debounce, Logger: opts.logger(),
		Mutator: v.recordsCol,
		Validate: func(rec models.TemporaryUsedRecord) map[string][]string {
			return listview.RequireFields(map[string]string{"name": rec.Name})
		},
		Match: func(rec models.TemporaryUsedRecord, needle string) bool {
			return listview.MatchFields(needle,
				rec.Name, deref(rec.Description), v.RecordAsset(rec), v.RecordUser(rec))
		},
	})
	v.Requests = listview.NewController[models.TemporaryUsedRequest](requestsCol, listview.Options[models.TemporaryUsedRequest]{
		Tab:      "request",
		PageSize: opts.PageSize, Debounce: opts.Debounce, Logger: opts.logger(),
		Mutator: requestsCol,
		Validate: func(req models.TemporaryUsedRequest) map[string][]string {
			return listview.RequireFields(map[string]string{"name": req.Name})
		},
		Match: func(req models.TemporaryUsedRequest, needle string) bool {
			return listview.MatchFields(needle,
				req.Name, deref(req.Description), v.RequestRecord(req), v.RequestAsset(req))
		},
	})

	v.register(v.Users, v.Records, v.Requests)
	return v
}

// Mount loads reference snapshots (each failing independently), then
// initializes and fetches the active tab.
func (v *TemporaryView) Mount(ctx context.Context, values url.Values) error {
	log := v.opts.logger()

	assets := listview.LoadSnapshot[models.Asset](ctx, v.assetsCol, log)
	v.assetNames = listview.NewResolver(assets,
		func(a models.Asset) int64 { return a.ID },
		func(a models.Asset) string { return a.Name }, maintenancePlaceholder)

	users := listview.LoadSnapshot[models.TemporaryUser](ctx, v.usersCol, log)
	v.userNames = listview.NewResolver(users,
		func(u models.TemporaryUser) int64 { return u.ID },
		func(u models.TemporaryUser) string { return u.Name }, maintenancePlaceholder)

	records := listview.LoadSnapshot[models.TemporaryUsedRecord](ctx, v.recordsCol, log)
	v.recordNames = listview.NewResolver(records,
		func(r models.TemporaryUsedRecord) int64 { return r.ID },
		func(r models.TemporaryUsedRecord) string { return r.Name }, maintenancePlaceholder)

	return v.mount(ctx, values)
}

func (v *TemporaryView) RecordAsset(r models.TemporaryUsedRecord) string {
	return v.assetNames.Resolve(r.AssetName, r.AssetID)
}

func (v *TemporaryView) RecordUser(r models.TemporaryUsedRecord) string {
	return v.userNames.Resolve(r.TemporaryUserName, r.TemporaryUserID)
}

func (v *TemporaryView) RequestRecord(r models.TemporaryUsedRequest) string {
	return v.recordNames.Resolve(r.TemporaryUsedRecordName, r.TemporaryUsedRecordID)
}

func (v *TemporaryView) RequestAsset(r models.TemporaryUsedRequest) string {
	return v.assetNames.Resolve(r.AssetName, r.AssetID)
}

func (v *TemporaryView) userColumns() []export.Column[models.TemporaryUser] {
	return []export.Column[models.TemporaryUser]{
		{Header: "ID", Value: func(u models.TemporaryUser) string { return itoa(u.ID) }},
		{Header: "Name", Value: func(u models.TemporaryUser) string { return u.Name }},
		{Header: "Description", Value: func(u models.TemporaryUser) string { return deref(u.Description) }},
	}
}

func (v *TemporaryView) recordColumns() []export.Column[models.TemporaryUsedRecord] {
	return []export.Column[models.TemporaryUsedRecord]{
		{Header: "ID", Value: func(r models.TemporaryUsedRecord) string { return itoa(r.ID) }},
		{Header: "Name", Value: func(r models.TemporaryUsedRecord) string { return r.Name }},
		{Header: "Asset", Value: v.RecordAsset},
		{Header: "Temporary User", Value: v.RecordUser},
	}
}

func (v *TemporaryView) requestColumns() []export.Column[models.TemporaryUsedRequest] {
	return []export.Column[models.TemporaryUsedRequest]{
		{Header: "ID", Value: func(r models.TemporaryUsedRequest) string { return itoa(r.ID) }},
		{Header: "Name", Value: func(r models.TemporaryUsedRequest) string { return r.Name }},
		{Header: "Record", Value: v.RequestRecord},
		{Header: "Asset", Value: v.RequestAsset},
	}
}

// Table returns the current rows of a tab for terminal rendering.
func (v *TemporaryView) Table(tab string) ([]string, [][]string, error) {
	switch tab {
	case "temporary-users":
		h, r := export.Table(v.Users.Rows(), v.userColumns())
		return h, r, nil
	case "record":
		h, r := export.Table(v.Records.Rows(), v.recordColumns())
		return h, r, nil
	case "request":
		h, r := export.Table(v.Requests.Rows(), v.requestColumns())
		return h, r, nil
	}
	return nil, nil, fmt.Errorf("views: unknown tab %q", tab)
}

// Export writes the current rows of a tab as an .xlsx sheet.
func (v *TemporaryView) Export(tab string, w io.Writer) error {
	switch tab {
	case "temporary-users":
		return export.Write(w, "Temporary Users", v.Users.Rows(), v.userColumns())
	case "record":
		return export.Write(w, "Temporary Used Records", v.Records.Rows(), v.recordColumns())
	case "request":
		return export.Write(w, "Temporary Used Requests", v.Requests.Rows(), v.requestColumns())
	}
	return fmt.Errorf("views: unknown tab %q", tab)
}
