package form

import (
	"github.com/mamadbah2/livestock-pricing/internal/domain/models"
	"github.com/mamadbah2/livestock-pricing/internal/importer"
	"github.com/mamadbah2/livestock-pricing/internal/pricing"
	"github.com/mamadbah2/livestock-pricing/internal/service/reconcile"
)

// ChangeFunc is called with a copy of the values after every update.
type ChangeFunc func(values models.PriceListForm)

// State owns the price-list values of one edit session. It has a single writer and
// is not safe for concurrent use.
type State struct {
	values    models.PriceListForm
	listeners []ChangeFunc
}

// New starts a session from initial values, filling in any missing category.
func New(initial models.PriceListForm) *State {
	values := initial.Clone()
	if values.Categories == nil {
		values.Categories = make(map[models.Category]models.CategoryForm, len(models.AllCategories))
	}
	for _, cat := range models.AllCategories {
		if _, ok := values.Categories[cat]; !ok {
			values.Categories[cat] = models.CategoryForm{Grades: map[string]models.GradeForm{}}
		}
	}
	return &State{values: values}
}

// Values returns a deep copy of the current values.
func (s *State) Values() models.PriceListForm {
	return s.values.Clone()
}

// OnChange registers a callback fired after each Update or ApplyImport.
func (s *State) OnChange(fn ChangeFunc) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}

// Update applies fn to a copy of the values and commits it.
func (s *State) Update(fn func(values *models.PriceListForm)) {
	next := s.values.Clone()
	fn(&next)
	s.commit(next)
}

// ApplyImport merges a reconciled spreadsheet into the form. Categories present in
// the import replace their form counterpart; absent prices become 0 and a category
// collects prices only if some grade carried a collected price.
func (s *State) ApplyImport(result *models.ParseResult, res reconcile.Resolution) error {
	if !result.CanApply() {
		return importer.ErrNotApplicable
	}

	next := s.values.Clone()
	if next.Categories == nil {
		next.Categories = make(map[models.Category]models.CategoryForm, len(result.Prices))
	}
	for _, cat := range models.AllCategories {
		parsed, ok := result.Prices[cat]
		if !ok {
			continue
		}

		merged := models.CategoryForm{
			HasPrice:      true,
			FarmProduceID: res.Categories[cat],
			Grades:        make(map[string]models.GradeForm, len(parsed.Grades)),
		}
		for key, grade := range parsed.Grades {
			if grade.Collected != nil {
				merged.HasCollectedPrice = true
			}
			gf := models.GradeForm{
				Code: grade.GradeCode,
				Pricing: models.PricingForm{
					Collected: valueOrZero(grade.Collected),
					Delivered: valueOrZero(grade.Delivered),
				},
			}
			if cat == models.CategorySlaughter {
				gf.FarmProduceID = res.Services[key]
			}
			merged.Grades[key] = gf
		}
		next.Categories[cat] = merged
	}

	if res.ClientID != "" {
		next.ClientID = res.ClientID
		next.ClientName = res.ClientName
	}
	if result.Metadata.EffectiveDate != nil {
		next.EffectiveDate = *result.Metadata.EffectiveDate
	}

	s.commit(next)
	return nil
}

func (s *State) commit(next models.PriceListForm) {
	s.values = next
	for _, fn := range s.listeners {
		fn(next.Clone())
	}
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return pricing.Round2(*v)
}
