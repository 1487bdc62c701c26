package models

import "time"

// Category identifies a livestock section of a price list.
type Category string

const (
	CategoryBeef      Category = "beef"
	CategoryLamb      Category = "lamb"
	CategoryMutton    Category = "mutton"
	CategoryGoat      Category = "goat"
	CategoryChicken   Category = "chicken"
	CategoryPork      Category = "pork"
	CategorySlaughter Category = "slaughter"
	CategoryCatering  Category = "catering"
)

// AllCategories lists every price-list category in display order.
var AllCategories = []Category{
	CategoryBeef,
	CategoryLamb,
	CategoryMutton,
	CategoryGoat,
	CategoryChicken,
	CategoryPork,
	CategorySlaughter,
	CategoryCatering,
}

// Valid reports whether c is one of AllCategories.
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// PricingForm holds decimal prices as typed by an operator.
type PricingForm struct {
	Collected float64 `json:"collected"`
	Delivered float64 `json:"delivered"`
}

// GradeForm is one grade row of a category on the form.
type GradeForm struct {
	Code string `json:"code"`
	// FarmProduceID is only set on slaughter services, which resolve individually.
	FarmProduceID string      `json:"farmProduceId,omitempty"`
	Pricing       PricingForm `json:"pricing"`
}

// CategoryForm is one livestock category on the form.
type CategoryForm struct {
	HasPrice          bool                 `json:"hasPrice"`
	HasCollectedPrice bool                 `json:"hasCollectedPrice"`
	FarmProduceID     string               `json:"farmProduceId,omitempty"`
	Grades            map[string]GradeForm `json:"grades"`
}

// PriceListForm is the editable, decimal representation of a price list.
type PriceListForm struct {
	ClientID      string                    `json:"clientId"`
	ClientName    string                    `json:"clientName,omitempty"`
	EffectiveDate time.Time                 `json:"effectiveDate"`
	Overwrite     bool                      `json:"overwrite"`
	Categories    map[Category]CategoryForm `json:"categories"`
}

// NewPriceListForm returns an empty form with every category present and disabled.
func NewPriceListForm() PriceListForm {
	form := PriceListForm{Categories: make(map[Category]CategoryForm, len(AllCategories))}
	for _, c := range AllCategories {
		form.Categories[c] = CategoryForm{Grades: map[string]GradeForm{}}
	}
	return form
}

// Clone returns a deep copy of the form.
func (f PriceListForm) Clone() PriceListForm {
	out := f
	if f.Categories == nil {
		return out
	}
	out.Categories = make(map[Category]CategoryForm, len(f.Categories))
	for key, cat := range f.Categories {
		copied := cat
		if cat.Grades != nil {
			copied.Grades = make(map[string]GradeForm, len(cat.Grades))
			for name, grade := range cat.Grades {
				copied.Grades[name] = grade
			}
		}
		out.Categories[key] = copied
	}
	return out
}

// Pricing holds minor-unit prices as sent to the backend.
type Pricing struct {
	Collected int64 `json:"collected" bson:"collected"`
	Delivered int64 `json:"delivered" bson:"delivered"`
}

// Grade is one grade entry on the wire.
type Grade struct {
	Code          string  `json:"code" bson:"code"`
	FarmProduceID string  `json:"farmProduceId,omitempty" bson:"farm_produce_id,omitempty"`
	Pricing       Pricing `json:"pricing" bson:"pricing"`
}

// CategoryPrices is one livestock category on the wire.
type CategoryPrices struct {
	HasPrice          bool             `json:"hasPrice" bson:"has_price"`
	HasCollectedPrice bool             `json:"hasCollectedPrice" bson:"has_collected_price"`
	FarmProduceID     string           `json:"farmProduceId,omitempty" bson:"farm_produce_id,omitempty"`
	Grades            map[string]Grade `json:"grades" bson:"grades"`
}

// PriceList is the submission payload for one client and effective date.
type PriceList struct {
	ID            string                      `json:"id,omitempty" bson:"id,omitempty"`
	ClientID      string                      `json:"clientId" bson:"client_id"`
	EffectiveDate time.Time                   `json:"effectiveDate" bson:"effective_date"`
	Categories    map[Category]CategoryPrices `json:"categories" bson:"categories"`
}

// Clone returns a deep copy of the price list.
func (p PriceList) Clone() PriceList {
	out := p
	if p.Categories == nil {
		return out
	}
	out.Categories = make(map[Category]CategoryPrices, len(p.Categories))
	for key, cat := range p.Categories {
		copied := cat
		if cat.Grades != nil {
			copied.Grades = make(map[string]Grade, len(cat.Grades))
			for name, grade := range cat.Grades {
				copied.Grades[name] = grade
			}
		}
		out.Categories[key] = copied
	}
	return out
}
