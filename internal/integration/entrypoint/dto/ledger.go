// Package dto defines data transfer objects for API requests and responses.
package dto

// RevisionResponse reports the ledger-wide revision counter. Pollers
// compare it against their last seen value to decide whether to refetch.
type RevisionResponse struct {
	Revision uint64 `json:"revision"`
}

// SeedResponse reports the outcome of a seeding request. Seeded is false
// when the ledger already held data and was left untouched.
type SeedResponse struct {
	Seeded             bool `json:"seeded"`
	TransactionsLoaded int  `json:"transactions_loaded"`
	InvoicesLoaded     int  `json:"invoices_loaded"`
}
