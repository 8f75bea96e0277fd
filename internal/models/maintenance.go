package models

// Maintainer is an internal or external maintenance contact.
type Maintainer struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Email              *string `json:"email,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	MaintainerTypeID   *int64  `json:"maintainerTypeId,omitempty"`
	MaintainerTypeName *string `json:"maintainerTypeName,omitempty"`
}

// MaintainerType is a reference collection for Maintainer.
type MaintainerType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MaintenanceRecord is one maintenance event performed on an asset.
type MaintenanceRecord struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	AssetID        *int64  `json:"assetId,omitempty"`
	MaintainerID   *int64  `json:"maintainerId,omitempty"`
	AssetName      *string `json:"assetName,omitempty"`
	MaintainerName *string `json:"maintainerName,omitempty"`
}

// MaintenancePart is a part consumed by a maintenance record.
type MaintenancePart struct {
	ID                    int64   `json:"id"`
	Name                  string  `json:"name"`
	Description           *string `json:"description,omitempty"`
	MaintenanceRecordID   *int64  `json:"maintenanceRecordId,omitempty"`
	MaintenanceRecordName *string `json:"maintenanceRecordName,omitempty"`
}
