package payload

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mamadbah2/livestock-pricing/internal/domain/models"
	"github.com/mamadbah2/livestock-pricing/internal/pricing"
)

// ValidationError lists every invalid form field keyed by its dotted path,
// e.g. "categories.beef.grades.super.pricing.delivered".
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid price list: " + strings.Join(parts, "; ")
}

// Validate checks the form before submission. Prices of a category are required
// only when HasPrice is set, and collected prices only when HasCollectedPrice is
// also set. Negative prices are rejected everywhere.
func Validate(form models.PriceListForm) error {
	fields := map[string]string{}

	if strings.TrimSpace(form.ClientID) == "" {
		fields["clientId"] = "client is required"
	}
	if form.EffectiveDate.IsZero() {
		fields["effectiveDate"] = "effective date is required"
	}

	enabled := 0
	for key, cat := range form.Categories {
		prefix := "categories." + string(key)
		if !key.Valid() {
			fields[prefix] = "unknown category"
			continue
		}

		for name, grade := range cat.Grades {
			path := prefix + ".grades." + name + ".pricing"
			if msg := amountProblem(grade.Pricing.Delivered); msg != "" {
				fields[path+".delivered"] = msg
			}
			if msg := amountProblem(grade.Pricing.Collected); msg != "" {
				fields[path+".collected"] = msg
			}
		}

		if !cat.HasPrice {
			continue
		}
		enabled++

		if len(cat.Grades) == 0 {
			fields[prefix+".grades"] = "at least one grade is required"
		}
		if key != models.CategorySlaughter && cat.FarmProduceID == "" {
			fields[prefix+".farmProduceId"] = "farm produce is required"
		}

		for name, grade := range cat.Grades {
			path := prefix + ".grades." + name
			if key == models.CategorySlaughter && grade.FarmProduceID == "" {
				fields[path+".farmProduceId"] = "farm produce is required"
			}
			if grade.Pricing.Delivered == 0 {
				fields[path+".pricing.delivered"] = "delivered price is required"
			}
			if cat.HasCollectedPrice && grade.Pricing.Collected == 0 {
				fields[path+".pricing.collected"] = "collected price is required"
			}
		}
	}

	if enabled == 0 {
		fields["categories"] = "at least one category must be priced"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func amountProblem(amount float64) string {
	switch {
	case amount < 0:
		return "must not be negative"
	case amount > pricing.MaxAmount:
		return "exceeds maximum price"
	}
	return ""
}
