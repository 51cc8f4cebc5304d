package models

// Snapshot bundles the full account list and transaction log into one
// document for export and destructive import.
type Snapshot struct {
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
}
