package models

import "time"

// Asset represents the core asset record as returned by the AMS service.
// Foreign keys are optional; the server may also inline denormalized display
// names (locationName etc.) which take precedence over local lookups.
type Asset struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	SerialNumber      *string    `json:"serialNumber,omitempty"`
	HasWarranty       bool       `json:"hasWarranty"`
	WarrantyStartDate *time.Time `json:"warrantyStartDate,omitempty"`
	WarrantyEndDate   *time.Time `json:"warrantyEndDate,omitempty"`
	SupplierID        *int64     `json:"supplierId,omitempty"`
	LocationID        *int64     `json:"locationId,omitempty"`
	AssetTypeID       *int64     `json:"assetTypeId,omitempty"`
	InvoiceID         *int64     `json:"invoiceId,omitempty"`
	SupplierName      *string    `json:"supplierName,omitempty"`
	LocationName      *string    `json:"locationName,omitempty"`
	AssetTypeName     *string    `json:"assetTypeName,omitempty"`
	InvoiceNumber     *string    `json:"invoiceNumber,omitempty"`
}

// AssetType categorizes assets within a category.
type AssetType struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	CategoryID   *int64  `json:"categoryId,omitempty"`
	CategoryName *string `json:"categoryName,omitempty"`
}

// AssetStatus is the current status record of an asset.
type AssetStatus struct {
	ID          int64   `json:"id"`
	Status      string  `json:"status"`
	Description *string `json:"description,omitempty"`
	AssetID     *int64  `json:"assetId,omitempty"`
	AssetName   *string `json:"assetName,omitempty"`
}

// AssetStatusHistory is one historical status entry of an asset.
type AssetStatusHistory struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	AssetID   *int64  `json:"assetId,omitempty"`
	AssetName *string `json:"assetName,omitempty"`
}

// AssetOwnership links an asset to its owner.
type AssetOwnership struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	AssetID   *int64  `json:"assetId,omitempty"`
	OwnerID   *int64  `json:"ownerId,omitempty"`
	AssetName *string `json:"assetName,omitempty"`
	OwnerName *string `json:"ownerName,omitempty"`
}

// Reference collections below are fetched once per view mount and used only
// to resolve foreign-key ids to display names.

type Supplier struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Location struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Invoice struct {
	ID            int64  `json:"id"`
	InvoiceNumber string `json:"invoiceNumber"`
}

type Owner struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
