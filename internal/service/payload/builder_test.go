package payload

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestock-pricing/internal/domain/models"
)

var effective = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func sampleForm() models.PriceListForm {
	form := models.NewPriceListForm()
	form.ClientID = "client-1"
	form.EffectiveDate = effective
	form.Categories[models.CategoryBeef] = models.CategoryForm{
		HasPrice:          true,
		HasCollectedPrice: true,
		FarmProduceID:     "fp-beef",
		Grades: map[string]models.GradeForm{
			"super":  {Code: "B1", Pricing: models.PricingForm{Collected: 9, Delivered: 10.5}},
			"choice": {Code: "B2", Pricing: models.PricingForm{Collected: 8.25, Delivered: 9.994}},
		},
	}
	form.Categories[models.CategorySlaughter] = models.CategoryForm{
		HasPrice: true,
		Grades: map[string]models.GradeForm{
			"cattle": {FarmProduceID: "fp-beef", Pricing: models.PricingForm{Delivered: 45}},
		},
	}
	return form
}

func TestBuildConvertsEveryLeaf(t *testing.T) {
	got := Build(sampleForm())

	beef := got.Categories[models.CategoryBeef]
	assert.True(t, beef.HasPrice)
	assert.Equal(t, "fp-beef", beef.FarmProduceID)
	assert.Equal(t, models.Pricing{Collected: 900, Delivered: 1050}, beef.Grades["super"].Pricing)
	assert.Equal(t, models.Pricing{Collected: 825, Delivered: 999}, beef.Grades["choice"].Pricing)
	assert.Equal(t, "B2", beef.Grades["choice"].Code)

	slaughter := got.Categories[models.CategorySlaughter]
	assert.Equal(t, "fp-beef", slaughter.Grades["cattle"].FarmProduceID)
	assert.Equal(t, int64(4500), slaughter.Grades["cattle"].Pricing.Delivered)

	assert.Len(t, got.Categories, len(models.AllCategories))
	assert.Equal(t, "client-1", got.ClientID)
	assert.Equal(t, effective, got.EffectiveDate)
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	form := sampleForm()
	before := form.Clone()

	out := Build(form)
	out.Categories[models.CategoryBeef].Grades["super"] = models.Grade{Code: "changed"}

	if diff := cmp.Diff(before, form); diff != "" {
		t.Fatalf("form mutated (-before +after):\n%s", diff)
	}
}

func TestBuildZeroPricesStayZero(t *testing.T) {
	form := models.NewPriceListForm()
	form.Categories[models.CategoryGoat] = models.CategoryForm{
		HasPrice: true,
		Grades:   map[string]models.GradeForm{"super": {}},
	}

	got := Build(form)
	assert.Equal(t, models.Pricing{}, got.Categories[models.CategoryGoat].Grades["super"].Pricing)
}

func TestBuildToleratesMissingMaps(t *testing.T) {
	form := models.PriceListForm{Categories: map[models.Category]models.CategoryForm{
		models.CategoryLamb: {HasPrice: true},
	}}

	got := Build(form)
	require.Contains(t, got.Categories, models.CategoryLamb)
	assert.Empty(t, got.Categories[models.CategoryLamb].Grades)

	assert.NotPanics(t, func() { Build(models.PriceListForm{}) })
}

func TestRoundTripFromCents(t *testing.T) {
	for _, cents := range []int64{0, 1, 5, 99, 100, 1050, 123456, 99999999} {
		pl := models.PriceList{
			ClientID:      "client-1",
			EffectiveDate: effective,
			Categories: map[models.Category]models.CategoryPrices{
				models.CategoryPork: {
					HasPrice:          true,
					HasCollectedPrice: true,
					FarmProduceID:     "fp-pork",
					Grades: map[string]models.Grade{
						"porker": {Code: "P1", Pricing: models.Pricing{Collected: cents, Delivered: cents + 1}},
					},
				},
			},
		}

		got := Build(FormFromPriceList(pl))
		if diff := cmp.Diff(pl, got); diff != "" {
			t.Fatalf("round trip for %d cents (-want +got):\n%s", cents, diff)
		}
	}
}
