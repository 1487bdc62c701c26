package models

import "time"

// ImportRecord is the stored trace of one spreadsheet import.
type ImportRecord struct {
	ID        string     `bson:"_id" json:"id"`
	Source    string     `bson:"source" json:"source"`
	ClientID  string     `bson:"client_id,omitempty" json:"clientId,omitempty"`
	Livestock []string   `bson:"livestock" json:"livestock"`
	Errors    []string   `bson:"errors" json:"errors"`
	Warnings  []string   `bson:"warnings" json:"warnings"`
	Applied   bool       `bson:"applied" json:"applied"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	AppliedAt *time.Time `bson:"applied_at,omitempty" json:"appliedAt,omitempty"`
}

// SubmissionRecord is the stored trace of one price-list submission.
type SubmissionRecord struct {
	ID            string    `bson:"_id" json:"id"`
	PriceListID   string    `bson:"price_list_id,omitempty" json:"priceListId,omitempty"`
	ClientID      string    `bson:"client_id" json:"clientId"`
	EffectiveDate time.Time `bson:"effective_date" json:"effectiveDate"`
	Overwrite     bool      `bson:"overwrite" json:"overwrite"`
	Outcome       string    `bson:"outcome" json:"outcome"`
	Error         string    `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
}
