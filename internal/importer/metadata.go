package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/livestock-pricing/internal/domain/models"
)

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2 January 2006",
	"02 Jan 2006",
	"January 2, 2006",
	"01-02-06",
}

// parseMetadata reads the label/value pairs in the rows above the header. A label
// may sit in column A with its value in column B, or both may share column A as
// "Label: value".
func parseMetadata(rows [][]string) models.SheetMetadata {
	meta := models.SheetMetadata{Extra: map[string]string{}}

	for i := 0; i < metadataRows && i < len(rows); i++ {
		label, value := cell(rows[i], 0), cell(rows[i], 1)
		if value == "" {
			if before, after, ok := strings.Cut(label, ":"); ok {
				label, value = before, strings.TrimSpace(after)
			}
		}
		label = NormalizeLabel(strings.TrimSuffix(label, ":"))
		if label == "" || value == "" {
			continue
		}

		switch label {
		case "client", "client_name", "customer", "buyer":
			meta.ClientName = value
		case "effective_date", "date", "effective_from", "price_date":
			if parsed, ok := parseDate(value); ok {
				meta.EffectiveDate = &parsed
			} else {
				meta.Extra[label] = value
			}
		case "currency":
			meta.Currency = value
		default:
			meta.Extra[label] = value
		}
	}

	if len(meta.Extra) == 0 {
		meta.Extra = nil
	}
	return meta
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	// Unformatted date cells come through as Excel serial numbers.
	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
