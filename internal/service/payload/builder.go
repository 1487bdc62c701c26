package payload

import (
	"github.com/mamadbah2/livestock-pricing/internal/domain/models"
	"github.com/mamadbah2/livestock-pricing/internal/pricing"
)

// Build converts the decimal form into a submission payload. Every collected and
// delivered price becomes minor units; the form itself is left untouched.
func Build(form models.PriceListForm) models.PriceList {
	out := models.PriceList{
		ClientID:      form.ClientID,
		EffectiveDate: form.EffectiveDate,
		Categories:    make(map[models.Category]models.CategoryPrices, len(form.Categories)),
	}

	for key, cat := range form.Categories {
		grades := make(map[string]models.Grade, len(cat.Grades))
		for name, grade := range cat.Grades {
			grades[name] = models.Grade{
				Code:          grade.Code,
				FarmProduceID: grade.FarmProduceID,
				Pricing: models.Pricing{
					Collected: pricing.ToMinorUnits(grade.Pricing.Collected),
					Delivered: pricing.ToMinorUnits(grade.Pricing.Delivered),
				},
			}
		}
		out.Categories[key] = models.CategoryPrices{
			HasPrice:          cat.HasPrice,
			HasCollectedPrice: cat.HasCollectedPrice,
			FarmProduceID:     cat.FarmProduceID,
			Grades:            grades,
		}
	}

	return out
}

// FormFromPriceList converts a stored price list back into decimal form values for
// editing.
func FormFromPriceList(pl models.PriceList) models.PriceListForm {
	form := models.PriceListForm{
		ClientID:      pl.ClientID,
		EffectiveDate: pl.EffectiveDate,
		Categories:    make(map[models.Category]models.CategoryForm, len(pl.Categories)),
	}

	for key, cat := range pl.Categories {
		grades := make(map[string]models.GradeForm, len(cat.Grades))
		for name, grade := range cat.Grades {
			grades[name] = models.GradeForm{
				Code:          grade.Code,
				FarmProduceID: grade.FarmProduceID,
				Pricing: models.PricingForm{
					Collected: pricing.ToDecimal(grade.Pricing.Collected),
					Delivered: pricing.ToDecimal(grade.Pricing.Delivered),
				},
			}
		}
		form.Categories[key] = models.CategoryForm{
			HasPrice:          cat.HasPrice,
			HasCollectedPrice: cat.HasCollectedPrice,
			FarmProduceID:     cat.FarmProduceID,
			Grades:            grades,
		}
	}

	return form
}
