package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestock-pricing/internal/domain/models"
)

func header() [][]string {
	return [][]string{
		{"Price List"},
		{"Client", "Acme Butchery"},
		{"Effective Date", "2025-03-01"},
		{"Currency: USD/ZIG"},
		{},
		{},
		{},
		{"Category", "Grade", "Grade Code", "Collected USD", "Delivered USD", "Collected ZIG", "Delivered ZIG", "Notes"},
	}
}

func sheet(data ...[]string) [][]string {
	return append(header(), data...)
}

func ptr(v float64) *float64 { return &v }

func TestParseRowsSingleGrade(t *testing.T) {
	result := ParseRows(sheet(
		[]string{"BEEF", "Super", "", "9.00", "10.50"},
	))

	require.Empty(t, result.Errors)
	assert.Equal(t, []string{"BEEF"}, result.Livestock)

	beef := result.Prices[models.CategoryBeef]
	require.NotNil(t, beef)
	assert.Equal(t, models.ParsedGrade{
		Delivered: ptr(10.50),
		Collected: ptr(9.00),
		GradeCode: "",
		Notes:     "",
	}, beef.Grades["super"])
	assert.True(t, result.CanApply())
}

func TestParseRowsNoDataRows(t *testing.T) {
	result := ParseRows(header())

	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors, ErrNoCategories.Error())
	assert.False(t, result.CanApply())
}

func TestParseRowsEmptyInput(t *testing.T) {
	result := ParseRows(nil)
	assert.Contains(t, result.Errors, ErrNoCategories.Error())
}

func TestParseRowsCategoryScoping(t *testing.T) {
	result := ParseRows(sheet(
		[]string{"BEEF", "Super Grade", "B1", "9", "10"},
		[]string{"", "Choice", "B2", "8", "9"},
		[]string{"", "", ""},
		[]string{"note:", "Prices exclude VAT"},
		[]string{"Chickens", "", ""},
		[]string{"", "Grade A", "C1", "", "3.20"},
		[]string{"", "Off-Layers", "C2", "abc", "2.10", "", "", "min 50 birds"},
		[]string{"", "Spent Hens", "C3", "1", "1.5"},
	))

	require.Empty(t, result.Errors)
	assert.Equal(t, []string{"BEEF", "Chickens"}, result.Livestock)
	assert.Equal(t, []string{"Prices exclude VAT"}, result.Notes)

	beef := result.Prices[models.CategoryBeef]
	assert.Equal(t, []string{"super", "choice"}, beef.Order)
	assert.Equal(t, "B2", beef.Grades["choice"].GradeCode)

	chicken := result.Prices[models.CategoryChicken]
	require.NotNil(t, chicken)
	assert.Equal(t, []string{"grade_a", "off_layers", "spent_hens"}, chicken.Order)
	assert.Nil(t, chicken.Grades["grade_a"].Collected, "empty cell is absent, not zero")
	assert.Nil(t, chicken.Grades["off_layers"].Collected, "unparsable cell is absent")
	assert.Equal(t, "min 50 birds", chicken.Grades["off_layers"].Notes)
}

func TestParseRowsZeroIsNotAbsent(t *testing.T) {
	result := ParseRows(sheet(
		[]string{"Goat", "Super", "", "0", "0"},
	))
	grade := result.Prices[models.CategoryGoat].Grades["super"]
	require.NotNil(t, grade.Collected)
	assert.Zero(t, *grade.Collected)
}

func TestParseRowsCategoryWithoutGrades(t *testing.T) {
	result := ParseRows(sheet(
		[]string{"Lamb", "Super", "", "5", "6"},
		[]string{"Pork", "", ""},
		[]string{"", "Porker", "", "", ""},
	))

	assert.Equal(t, []string{"no grade prices found for Pork"}, result.Errors)
	assert.Contains(t, result.Warnings, `row 11: grade "Porker" has no prices`)
	assert.False(t, result.CanApply())
}

func TestParseRowsGradeBeforeCategory(t *testing.T) {
	result := ParseRows(sheet(
		[]string{"", "Super", "", "5", "6"},
		[]string{"Mutton", "Choice", "", "5", "6"},
	))

	require.Empty(t, result.Errors)
	assert.Contains(t, result.Warnings, `row 9: grade "Super" appears before any category`)
	assert.Len(t, result.Prices[models.CategoryMutton].Grades, 1)
}

func TestParseRowsUnknownCategoryIgnored(t *testing.T) {
	result := ParseRows(sheet(
		[]string{"Ostrich", "Super", "", "5", "6"},
		[]string{"Beef", "Super", "", "5", "6"},
	))

	require.Empty(t, result.Errors)
	assert.Equal(t, []string{"Beef"}, result.Livestock)
	assert.Contains(t, result.Warnings, `row 9: unknown livestock category "Ostrich" ignored`)
}

func TestParseMetadata(t *testing.T) {
	result := ParseRows(sheet([]string{"Beef", "Super", "", "5", "6"}))

	assert.Equal(t, "Acme Butchery", result.Metadata.ClientName)
	assert.Equal(t, "USD/ZIG", result.Metadata.Currency)
	require.NotNil(t, result.Metadata.EffectiveDate)
	assert.Equal(t, "2025-03-01", result.Metadata.EffectiveDate.Format("2006-01-02"))
}

func TestParseDateSerial(t *testing.T) {
	got, ok := parseDate("45717")
	require.True(t, ok)
	assert.Equal(t, "2025-03-01", got.Format("2006-01-02"))
}
