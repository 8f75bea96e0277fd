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

// Unresolved foreign keys on the maintenance page render as "N/A".
const maintenancePlaceholder = "N/A"

// MaintenanceView is the maintenance page: maintainers (primary),
// maintenance records and parts.
type MaintenanceView struct {
	View

	Maintainers *listview.Controller[models.Maintainer]
	Records     *listview.Controller[models.MaintenanceRecord]
	Parts       *listview.Controller[models.MaintenancePart]

	opts Options

	maintainersCol *source.Collection[models.Maintainer]
	recordsCol     *source.Collection[models.MaintenanceRecord]
	typesCol       *source.Collection[models.MaintainerType]
	assetsCol      *source.Collection[models.Asset]

	maintainerTypes *listview.Resolver
	assetNames      *listview.Resolver
	maintainerNames *listview.Resolver
	recordNames     *listview.Resolver
}

// NewMaintenanceView builds the page over the asset-management service
// client.
func NewMaintenanceView(client *source.Client, opts Options) *MaintenanceView {
	v := &MaintenanceView{opts: opts}

	v.maintainerTypes = listview.EmptyResolver(maintenancePlaceholder)
	v.assetNames = listview.EmptyResolver(maintenancePlaceholder)
	v.maintainerNames = listview.EmptyResolver(maintenancePlaceholder)
	v.recordNames = listview.EmptyResolver(maintenancePlaceholder)

	v.maintainersCol = source.NewCollection[models.Maintainer](client, "/maintainers", "maintainers")
	v.recordsCol = source.NewCollection[models.MaintenanceRecord](client, "/maintenance-records", "maintenance-records")
	partsCol := source.NewCollection[models.MaintenancePart](client, "/maintenance-parts", "maintenance-parts")
	v.typesCol = source.NewCollection[models.MaintainerType](client, "/maintainer-types", "maintainer-types")
	v.assetsCol = source.NewCollection[models.Asset](client, "/assets", "assets")

	v.Maintainers = listview.NewController[models.Maintainer](v.maintainersCol, listview.Options[models.Maintainer]{
		Tab: "maintainers", Primary: true,
		PageSize: opts.PageSize, Debounce: opts.Debounce, Logger: opts.logger(),
		Mutator: v.maintainersCol,
		Validate: func(m models.Maintainer) map[string][]string {
			return listview.RequireFields(map[string]string{"name": m.Name})
		},
		Match: func(m models.Maintainer, needle string) bool {
			return listview.MatchFields(needle,
				m.Name, deref(m.Email), deref(m.Phone), v.MaintainerType(m))
		},
	})
	v.Records = listview.NewController[models.MaintenanceRecord](v.recordsCol, listview.Options[models.MaintenanceRecord]{
		Tab:      "record",
		PageSize: opts.PageSize, Debounce: opts.Debounce, Logger: opts.logger(),
		Mutator: v.recordsCol,
		Validate: func(rec models.MaintenanceRecord) map[string][]string {
			return listview.RequireFields(map[string]string{"name": rec.Name})
		},
		Match: func(rec models.MaintenanceRecord, needle string) bool {
			return listview.MatchFields(needle,
				rec.Name, v.RecordAsset(rec), v.RecordMaintainer(rec))
		},
	})
	v.Parts = listview.NewController[models.MaintenancePart](partsCol, listview.Options[models.MaintenancePart]{
		Tab:      "part",
		PageSize: opts.PageSize, Debounce: opts.Debounce, Logger: opts.logger(),
		Mutator: partsCol,
		Validate: func(p models.MaintenancePart) map[string][]string {
			return listview.RequireFields(map[string]string{"name": p.Name})
		},
		Match: func(p models.MaintenancePart, needle string) bool {
			return listview.MatchFields(needle,
				p.Name, deref(p.Description), v.PartRecord(p))
		},
	})

	v.register(v.Maintainers, v.Records, v.Parts)
	return v
}

// Mount loads reference snapshots (each failing independently), then
// initializes and fetches the active tab.
func (v *MaintenanceView) Mount(ctx context.Context, values url.Values) error {
	log := v.opts.logger()

	types := listview.LoadSnapshot[models.MaintainerType](ctx, v.typesCol, log)
	v.maintainerTypes = listview.NewResolver(types,
		func(t models.MaintainerType) int64 { return t.ID },
		func(t models.MaintainerType) string { return t.Name }, maintenancePlaceholder)

	assets := listview.LoadSnapshot[models.Asset](ctx, v.assetsCol, log)
	v.assetNames = listview.NewResolver(assets,
		func(a models.Asset) int64 { return a.ID },
		func(a models.Asset) string { return a.Name }, maintenancePlaceholder)

	maintainers := listview.LoadSnapshot[models.Maintainer](ctx, v.maintainersCol, log)
	v.maintainerNames = listview.NewResolver(maintainers,
		func(m models.Maintainer) int64 { return m.ID },
		func(m models.Maintainer) string { return m.Name }, maintenancePlaceholder)

	records := listview.LoadSnapshot[models.MaintenanceRecord](ctx, v.recordsCol, log)
	v.recordNames = listview.NewResolver(records,
		func(r models.MaintenanceRecord) int64 { return r.ID },
		func(r models.MaintenanceRecord) string { return r.Name }, maintenancePlaceholder)

	return v.mount(ctx, values)
}

func (v *MaintenanceView) MaintainerType(m models.Maintainer) string {
	return v.maintainerTypes.Resolve(m.MaintainerTypeName, m.MaintainerTypeID)
}

func (v *MaintenanceView) RecordAsset(r models.MaintenanceRecord) string {
	return v.assetNames.Resolve(r.AssetName, r.AssetID)
}

func (v *MaintenanceView) RecordMaintainer(r models.MaintenanceRecord) string {
	return v.maintainerNames.Resolve(r.MaintainerName, r.MaintainerID)
}

func (v *MaintenanceView) PartRecord(p models.MaintenancePart) string {
	return v.recordNames.Resolve(p.MaintenanceRecordName, p.MaintenanceRecordID)
}

func (v *MaintenanceView) maintainerColumns() []export.Column[models.Maintainer] {
	return []export.Column[models.Maintainer]{
		{Header: "ID", Value: func(m models.Maintainer) string { return itoa(m.ID) }},
		{Header: "Name", Value: func(m models.Maintainer) string { return m.Name }},
		{Header: "Email", Value: func(m models.Maintainer) string { return deref(m.Email) }},
		{Header: "Phone", Value: func(m models.Maintainer) string { return deref(m.Phone) }},
		{Header: "Type", Value: v.MaintainerType},
	}
}

func (v *MaintenanceView) recordColumns() []export.Column[models.MaintenanceRecord] {
	return []export.Column[models.MaintenanceRecord]{
		{Header: "ID", Value: func(r models.MaintenanceRecord) string { return itoa(r.ID) }},
		{Header: "Name", Value: func(r models.MaintenanceRecord) string { return r.Name }},
		{Header: "Asset", Value: v.RecordAsset},
		{Header: "Maintainer", Value: v.RecordMaintainer},
	}
}

func (v *MaintenanceView) partColumns() []export.Column[models.MaintenancePart] {
	return []export.Column[models.MaintenancePart]{
		{Header: "ID", Value: func(p models.MaintenancePart) string { return itoa(p.ID) }},
		{Header: "Name", Value: func(p models.MaintenancePart) string { return p.Name }},
		{Header: "Description", Value: func(p models.MaintenancePart) string { return deref(p.Description) }},
		{Header: "Record", Value: v.PartRecord},
	}
}

// Table returns the current rows of a tab for terminal rendering.
func (v *MaintenanceView) Table(tab string) ([]string, [][]string, error) {
	switch tab {
	case "maintainers":
		h, r := export.Table(v.Maintainers.Rows(), v.maintainerColumns())
		return h, r, nil
	case "record":
		h, r := export.Table(v.Records.Rows(), v.recordColumns())
		return h, r, nil
	case "part":
		h, r := export.Table(v.Parts.Rows(), v.partColumns())
		return h, r, nil
	}
	return nil, nil, fmt.Errorf("views: unknown tab %q", tab)
}

// Export writes the current rows of a tab as an .xlsx sheet.
func (v *MaintenanceView) Export(tab string, w io.Writer) error {
	switch tab {
	case "maintainers":
		return export.Write(w, "Maintainers", v.Maintainers.Rows(), v.maintainerColumns())
	case "record":
		return export.Write(w, "Maintenance Records", v.Records.Rows(), v.recordColumns())
	case "part":
		return export.Write(w, "Maintenance Parts", v.Parts.Rows(), v.partColumns())
	}
	return fmt.Errorf("views: unknown tab %q", tab)
}
