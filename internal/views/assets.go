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

// Unresolved foreign keys on the asset page render as "-".
const assetPlaceholder = "-"

// AssetsView is the asset-management page: the primary assets tab plus the
// asset-type, status, history and ownership tabs, with the reference
// snapshots needed to resolve their foreign keys.
type AssetsView struct {
	View

	Assets     *listview.Controller[models.Asset]
	Types      *listview.Controller[models.AssetType]
	Statuses   *listview.Controller[models.AssetStatus]
	History    *listview.Controller[models.AssetStatusHistory]
	Ownerships *listview.Controller[models.AssetOwnership]

	opts Options

	assetsCol     *source.Collection[models.Asset]
	locationsCol  *source.Collection[models.Location]
	suppliersCol  *source.Collection[models.Supplier]
	categoriesCol *source.Collection[models.Category]
	invoicesCol   *source.Collection[models.Invoice]
	ownersCol     *source.Collection[models.Owner]
	typesCol      *source.Collection[models.AssetType]

	locations  *listview.Resolver
	suppliers  *listview.Resolver
	categories *listview.Resolver
	invoices   *listview.Resolver
	owners     *listview.Resolver
	assetTypes *listview.Resolver
	assetNames *listview.Resolver
}

// NewAssetsView builds the page over the asset-management service client.
func NewAssetsView(client *source.Client, opts Options) *AssetsView {
	v := &AssetsView{opts: opts}

	v.locations = listview.EmptyResolver(assetPlaceholder)
	v.suppliers = listview.EmptyResolver(assetPlaceholder)
	v.categories = listview.EmptyResolver(assetPlaceholder)
	v.invoices = listview.EmptyResolver(assetPlaceholder)
	v.owners = listview.EmptyResolver(assetPlaceholder)
	v.assetTypes = listview.EmptyResolver(assetPlaceholder)
	v.assetNames = listview.EmptyResolver(assetPlaceholder)

	v.assetsCol = source.NewCollection[models.Asset](client, "/assets", "assets")
	v.typesCol = source.NewCollection[models.AssetType](client, "/asset-types", "asset-types")
	statusCol := source.NewCollection[models.AssetStatus](client, "/asset-statuses", "asset-statuses")
	historyCol := source.NewCollection[models.AssetStatusHistory](client, "/asset-status-histories", "asset-status-histories")
	ownershipCol := source.NewCollection[models.AssetOwnership](client, "/asset-ownerships", "asset-ownerships")

	v.locationsCol = source.NewCollection[models.Location](client, "/locations", "locations")
	v.suppliersCol = source.NewCollection[models.Supplier](client, "/suppliers", "suppliers")
	v.categoriesCol = source.NewCollection[models.Category](client, "/categories", "categories")
	v.invoicesCol = source.NewCollection[models.Invoice](client, "/invoices", "invoices")
	v.ownersCol = source.NewCollection[models.Owner](client, "/owners", "owners")

	v.Assets = listview.NewController[models.Asset](v.assetsCol, listview.Options[models.Asset]{
		Tab: "assets", Primary: true,
		PageSize: opts.PageSize, Debounce: opts.Debounce, Logger: opts.logger(),
		Mutator: v.assetsCol,
		Validate: func(a models.Asset) map[string][]string {
			return listview.RequireFields(map[string]string{"name": a.Name})
		},
		Match: func(a models.Asset, needle string) bool {
			return listview.MatchFields(needle,
				a.Name, deref(a.SerialNumber),
				v.AssetLocation(a), v.AssetSupplier(a), v.AssetType(a), v.AssetInvoice(a))
		},
	})
	v.Types = listview.NewController[models.AssetType](v.typesCol, listview.Options[models.AssetType]{
		Tab:      "asset-type",
		PageSize: opts.PageSize, Debounce: opts.Debounce, Logger: opts.logger(),
		Mutator: v.typesCol,
		Validate: func(t models.AssetType) map[string][]string {
			return listview.RequireFields(map[string]string{"name": t.Name})
		},
		Match: func(t models.AssetType, needle string) bool {
			return listview.MatchFields(needle, t.Name, v.TypeCategory(t))
		},
	})
	v.Statuses = listview.NewController[models.AssetStatus](statusCol, listview.Options[models.AssetStatus]{
		Tab:      "status",
		PageSize: opts.PageSize, Debounce: opts.Debounce, Logger: opts.logger(),
		Mutator: statusCol,
		Validate: func(st models.AssetStatus) map[string][]string {
			return listview.RequireFields(map[string]string{"status": st.Status})
		},
		Match: func(st models.AssetStatus, needle string) bool {
			return listview.MatchFields(needle, st.Status, deref(st.Description), v.StatusAsset(st))
		},
	})
	v.History = listview.NewController[models.AssetStatusHistory](historyCol, listview.Options[models.AssetStatusHistory]{
		Tab:      "history",
		PageSize: opts.PageSize, Debounce: opts.Debounce, Logger: opts.logger(),
		Mutator: historyCol,
		Validate: func(h models.AssetStatusHistory) map[string][]string {
			return listview.RequireFields(map[string]string{"name": h.Name})
		},
		Match: func(h models.AssetStatusHistory, needle string) bool {
			return listview.MatchFields(needle, h.Name, v.HistoryAsset(h))
		},
	})
	v.Ownerships = listview.NewController[models.AssetOwnership](ownershipCol, listview.Options[models.AssetOwnership]{
		Tab:      "ownership",
		PageSize: opts.PageSize, Debounce: opts.Debounce, Logger: opts.logger(),
		Mutator: ownershipCol,
		Validate: func(o models.AssetOwnership) map[string][]string {
			return listview.RequireFields(map[string]string{"name": o.Name})
		},
		Match: func(o models.AssetOwnership, needle string) bool {
			return listview.MatchFields(needle, o.Name, v.OwnershipAsset(o), v.OwnershipOwner(o))
		},
	})

	v.register(v.Assets, v.Types, v.Statuses, v.History, v.Ownerships)
	return v
}

// Mount loads the reference snapshots, initializes every tab from the URL
// and fetches the active one. Reference fetches fail independently: a
// missing collection degrades to placeholders instead of blocking the page.
func (v *AssetsView) Mount(ctx context.Context, values url.Values) error {
	log := v.opts.logger()

	locations := listview.LoadSnapshot[models.Location](ctx, v.locationsCol, log)
	v.locations = listview.NewResolver(locations,
		func(l models.Location) int64 { return l.ID },
		func(l models.Location) string { return l.Name }, assetPlaceholder)

	suppliers := listview.LoadSnapshot[models.Supplier](ctx, v.suppliersCol, log)
	v.suppliers = listview.NewResolver(suppliers,
		func(s models.Supplier) int64 { return s.ID },
		func(s models.Supplier) string { return s.Name }, assetPlaceholder)

	categories := listview.LoadSnapshot[models.Category](ctx, v.categoriesCol, log)
	v.categories = listview.NewResolver(categories,
		func(c models.Category) int64 { return c.ID },
		func(c models.Category) string { return c.Name }, assetPlaceholder)

	invoices := listview.LoadSnapshot[models.Invoice](ctx, v.invoicesCol, log)
	v.invoices = listview.NewResolver(invoices,
		func(i models.Invoice) int64 { return i.ID },
		func(i models.Invoice) string { return i.InvoiceNumber }, assetPlaceholder)

	owners := listview.LoadSnapshot[models.Owner](ctx, v.ownersCol, log)
	v.owners = listview.NewResolver(owners,
		func(o models.Owner) int64 { return o.ID },
		func(o models.Owner) string { return o.Name }, assetPlaceholder)

	types := listview.LoadSnapshot[models.AssetType](ctx, v.typesCol, log)
	v.assetTypes = listview.NewResolver(types,
		func(t models.AssetType) int64 { return t.ID },
		func(t models.AssetType) string { return t.Name }, assetPlaceholder)

	assets := listview.LoadSnapshot[models.Asset](ctx, v.assetsCol, log)
	v.assetNames = listview.NewResolver(assets,
		func(a models.Asset) int64 { return a.ID },
		func(a models.Asset) string { return a.Name }, assetPlaceholder)

	return v.mount(ctx, values)
}

// Resolved display names. Inline denormalized fields from the server win;
// otherwise the reference snapshot is consulted.

func (v *AssetsView) AssetLocation(a models.Asset) string {
	return v.locations.Resolve(a.LocationName, a.LocationID)
}

func (v *AssetsView) AssetSupplier(a models.Asset) string {
	return v.suppliers.Resolve(a.SupplierName, a.SupplierID)
}

func (v *AssetsView) AssetType(a models.Asset) string {
	return v.assetTypes.Resolve(a.AssetTypeName, a.AssetTypeID)
}

func (v *AssetsView) AssetInvoice(a models.Asset) string {
	return v.invoices.Resolve(a.InvoiceNumber, a.InvoiceID)
}

func (v *AssetsView) TypeCategory(t models.AssetType) string {
	return v.categories.Resolve(t.CategoryName, t.CategoryID)
}

func (v *AssetsView) StatusAsset(st models.AssetStatus) string {
	return v.assetNames.Resolve(st.AssetName, st.AssetID)
}

func (v *AssetsView) HistoryAsset(h models.AssetStatusHistory) string {
	return v.assetNames.Resolve(h.AssetName, h.AssetID)
}

func (v *AssetsView) OwnershipAsset(o models.AssetOwnership) string {
	return v.assetNames.Resolve(o.AssetName, o.AssetID)
}

func (v *AssetsView) OwnershipOwner(o models.AssetOwnership) string {
	return v.owners.Resolve(o.OwnerName, o.OwnerID)
}

func (v *AssetsView) assetColumns() []export.Column[models.Asset] {
	return []export.Column[models.Asset]{
		{Header: "ID", Value: func(a models.Asset) string { return itoa(a.ID) }},
		{Header: "Name", Value: func(a models.Asset) string { return a.Name }},
		{Header: "Serial Number", Value: func(a models.Asset) string { return deref(a.SerialNumber) }},
		{Header: "Type", Value: v.AssetType},
		{Header: "Location", Value: v.AssetLocation},
		{Header: "Supplier", Value: v.AssetSupplier},
		{Header: "Invoice", Value: v.AssetInvoice},
		{Header: "Warranty", Value: func(a models.Asset) string { return yesNo(a.HasWarranty) }},
	}
}

func (v *AssetsView) typeColumns() []export.Column[models.AssetType] {
	return []export.Column[models.AssetType]{
		{Header: "ID", Value: func(t models.AssetType) string { return itoa(t.ID) }},
		{Header: "Name", Value: func(t models.AssetType) string { return t.Name }},
		{Header: "Category", Value: v.TypeCategory},
	}
}

func (v *AssetsView) statusColumns() []export.Column[models.AssetStatus] {
	return []export.Column[models.AssetStatus]{
		{Header: "ID", Value: func(st models.AssetStatus) string { return itoa(st.ID) }},
		{Header: "Status", Value: func(st models.AssetStatus) string { return st.Status }},
		{Header: "Description", Value: func(st models.AssetStatus) string { return deref(st.Description) }},
		{Header: "Asset", Value: v.StatusAsset},
	}
}

func (v *AssetsView) historyColumns() []export.Column[models.AssetStatusHistory] {
	return []export.Column[models.AssetStatusHistory]{
		{Header: "ID", Value: func(h models.AssetStatusHistory) string { return itoa(h.ID) }},
		{Header: "Name", Value: func(h models.AssetStatusHistory) string { return h.Name }},
		{Header: "Asset", Value: v.HistoryAsset},
	}
}

func (v *AssetsView) ownershipColumns() []export.Column[models.AssetOwnership] {
	return []export.Column[models.AssetOwnership]{
		{Header: "ID", Value: func(o models.AssetOwnership) string { return itoa(o.ID) }},
		{Header: "Name", Value: func(o models.AssetOwnership) string { return o.Name }},
		{Header: "Asset", Value: v.OwnershipAsset},
		{Header: "Owner", Value: v.OwnershipOwner},
	}
}

// Table returns the current rows of a tab as header/rows for terminal
// rendering.
func (v *AssetsView) Table(tab string) ([]string, [][]string, error) {
	switch tab {
	case "assets":
		h, r := export.Table(v.Assets.Rows(), v.assetColumns())
		return h, r, nil
	case "asset-type":
		h, r := export.Table(v.Types.Rows(), v.typeColumns())
		return h, r, nil
	case "status":
		h, r := export.Table(v.Statuses.Rows(), v.statusColumns())
		return h, r, nil
	case "history":
		h, r := export.Table(v.History.Rows(), v.historyColumns())
		return h, r, nil
	case "ownership":
		h, r := export.Table(v.Ownerships.Rows(), v.ownershipColumns())
		return h, r, nil
	}
	return nil, nil, fmt.Errorf("views: unknown tab %q", tab)
}

// Export writes the current rows of a tab as an .xlsx sheet.
func (v *AssetsView) Export(tab string, w io.Writer) error {
	switch tab {
	case "assets":
		return export.Write(w, "Assets", v.Assets.Rows(), v.assetColumns())
	case "asset-type":
		return export.Write(w, "Asset Types", v.Types.Rows(), v.typeColumns())
	case "status":
		return export.Write(w, "Asset Statuses", v.Statuses.Rows(), v.statusColumns())
	case "history":
		return export.Write(w, "Status History", v.History.Rows(), v.historyColumns())
	case "ownership":
		return export.Write(w, "Ownership", v.Ownerships.Rows(), v.ownershipColumns())
	}
	return fmt.Errorf("views: unknown tab %q", tab)
}
