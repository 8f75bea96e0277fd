package models

// TemporaryUser is a short-term borrower tracked by the HR service.
type TemporaryUser struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// TemporaryUsedRecord records an asset lent to a temporary user.
type TemporaryUsedRecord struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Description       *string `json:"description,omitempty"`
	AssetID           *int64  `json:"assetId,omitempty"`
	TemporaryUserID   *int64  `json:"temporaryUserId,omitempty"`
	AssetName         *string `json:"assetName,omitempty"`
	TemporaryUserName *string `json:"temporaryUserName,omitempty"`
}

// TemporaryUsedRequest is a pending request against a used record.
type TemporaryUsedRequest struct {
	ID                      int64   `json:"id"`
	Name                    string  `json:"name"`
	Description             *string `json:"description,omitempty"`
	TemporaryUsedRecordID   *int64  `json:"temporaryUsedRecordId,omitempty"`
	AssetID                 *int64  `json:"assetId,omitempty"`
	TemporaryUsedRecordName *string `json:"temporaryUsedRecordName,omitempty"`
	AssetName               *string `json:"assetName,omitempty"`
}
