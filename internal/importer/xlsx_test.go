package importer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/livestock-pricing/internal/domain/models"
)

func workbook(t *testing.T, rows map[string][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)
	for cellRef, values := range rows {
		values := values
		require.NoError(t, f.SetSheetRow(sheetName, cellRef, &values))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseXLSX(t *testing.T) {
	buf := workbook(t, map[string][]interface{}{
		"A2":  {"Client", "Acme Butchery"},
		"A8":  {"Category", "Grade", "Grade Code", "Collected USD", "Delivered USD", "Collected ZIG", "Delivered ZIG", "Notes"},
		"A9":  {"BEEF", "Super", "", 9, 10.5},
		"A10": {"note:", "Valid for March"},
	})

	result, err := NewParser(nil, nil).ParseXLSX(buf)
	require.NoError(t, err)
	require.Empty(t, result.Errors)

	assert.Equal(t, "Acme Butchery", result.Metadata.ClientName)
	assert.Equal(t, []string{"BEEF"}, result.Livestock)
	assert.Equal(t, []string{"Valid for March"}, result.Notes)

	super := result.Prices[models.CategoryBeef].Grades["super"]
	require.NotNil(t, super.Delivered)
	assert.InDelta(t, 10.5, *super.Delivered, 1e-9)
	assert.InDelta(t, 9.0, *super.Collected, 1e-9)
}

func TestReadXLSXRejectsLegacyFormat(t *testing.T) {
	legacy := append(append([]byte{}, oleSignature...), make([]byte, 64)...)
	_, err := ReadXLSX(bytes.NewReader(legacy))
	assert.ErrorIs(t, err, ErrLegacyFormat)
}

func TestReadXLSXMalformed(t *testing.T) {
	_, err := ReadXLSX(bytes.NewReader([]byte("not a workbook")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedFile))
}

func TestRowsFromSheetValues(t *testing.T) {
	rows := RowsFromSheetValues([][]interface{}{
		{"BEEF", "Super", nil, 9.5},
		{},
	})
	assert.Equal(t, [][]string{{"BEEF", "Super", "", "9.5"}, {}}, rows)
}
