package model

import "time"

// Entry represents one proposed inventory change: the unit of the
// maker/checker approval workflow. Descriptive fields are opaque to the
// workflow itself; only Status is owned by it.
type Entry struct {
	ID           int64      `json:"id"`
	Ref          string     `json:"ref"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Quantity     string     `json:"quantity"`
	Location     string     `json:"location,omitempty"`
	Supplier     string     `json:"supplier,omitempty"`
	ExpiryDate   string     `json:"expiry_date,omitempty"`
	BatchNumber  string     `json:"batch_number,omitempty"`
	CostPrice    string     `json:"cost_price,omitempty"`
	SellingPrice string     `json:"selling_price,omitempty"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status"`
	SubmittedBy  string     `json:"submitted_by"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	ReviewedBy   string     `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
}

// Entry statuses. Approved and rejected are terminal.
const (
	EntryStatusPending  = "pending"
	EntryStatusApproved = "approved"
	EntryStatusRejected = "rejected"
)

// EntryDraft carries the fields a submitter provides. Name, Category and
// Quantity are required; the rest are optional.
type EntryDraft struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Quantity     string `json:"quantity"`
	Location     string `json:"location"`
	Supplier     string `json:"supplier"`
	ExpiryDate   string `json:"expiry_date"`
	BatchNumber  string `json:"batch_number"`
	CostPrice    string `json:"cost_price"`
	SellingPrice string `json:"selling_price"`
	Description  string `json:"description"`
}
