package models

import "time"

// SpreadsheetRow is one data row of an uploaded price-list workbook.
// Price cells are nil when the cell was empty or not numeric.
type SpreadsheetRow struct {
	Number       int
	Category     string
	Grade        string
	GradeCode    string
	CollectedUSD *float64
	DeliveredUSD *float64
	CollectedZIG *float64
	DeliveredZIG *float64
	Notes        string
}

// HasAnyPrice reports whether at least one price cell parsed.
func (r SpreadsheetRow) HasAnyPrice() bool {
	return r.CollectedUSD != nil || r.DeliveredUSD != nil || r.CollectedZIG != nil || r.DeliveredZIG != nil
}

// SheetMetadata holds the label/value pairs found above the header row.
type SheetMetadata struct {
	ClientName    string            `json:"clientName,omitempty"`
	EffectiveDate *time.Time        `json:"effectiveDate,omitempty"`
	Currency      string            `json:"currency,omitempty"`
	Extra         map[string]string `json:"extra,omitempty"`
}

// ParsedGrade is a grade accumulated from the spreadsheet. USD prices feed the form.
type ParsedGrade struct {
	Delivered    *float64 `json:"delivered"`
	Collected    *float64 `json:"collected"`
	DeliveredZIG *float64 `json:"deliveredZig,omitempty"`
	CollectedZIG *float64 `json:"collectedZig,omitempty"`
	GradeCode    string   `json:"gradeCode"`
	Notes        string   `json:"notes"`
}

// ParsedCategory is every grade collected under one category heading.
type ParsedCategory struct {
	Label  string                 `json:"label"`
	Grades map[string]ParsedGrade `json:"grades"`
	// Order keeps grade keys in the order they appeared.
	Order []string `json:"order"`
}

// ParseResult is the output of reading one price-list spreadsheet.
type ParseResult struct {
	Metadata  SheetMetadata                `json:"metadata"`
	Prices    map[Category]*ParsedCategory `json:"prices"`
	Livestock []string                     `json:"livestock"`
	Notes     []string                     `json:"notes"`
	Errors    []string                     `json:"errors"`
	Warnings  []string                     `json:"warnings"`
}

// CanApply reports whether the result may be merged into a form.
func (r *ParseResult) CanApply() bool {
	return r != nil && len(r.Errors) == 0
}
