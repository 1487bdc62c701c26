package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/livestock-pricing/internal/domain/models"
)

// ErrLegacyFormat is returned for binary .xls workbooks, which excelize cannot read.
var ErrLegacyFormat = errors.New("legacy .xls workbooks are not supported, save the file as .xlsx and upload again")

// ErrMalformedFile wraps any failure to open or read a workbook.
var ErrMalformedFile = errors.New("malformed spreadsheet")

// maxWorkbookSize bounds uploads read into memory.
const maxWorkbookSize = 10 << 20

var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// ReadXLSX returns the rows of the first sheet of a workbook.
func ReadXLSX(r io.Reader) ([][]string, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxWorkbookSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read upload: %v", ErrMalformedFile, err)
	}
	if len(raw) > maxWorkbookSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrMalformedFile, maxWorkbookSize)
	}
	if bytes.HasPrefix(raw, oleSignature) {
		return nil, ErrLegacyFormat
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", ErrMalformedFile, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformedFile)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: read rows of %s: %v", ErrMalformedFile, sheetName, err)
	}
	return rows, nil
}

// ParseXLSX reads the first sheet of a workbook and parses it.
func (p *Parser) ParseXLSX(r io.Reader) (*models.ParseResult, error) {
	rows, err := ReadXLSX(r)
	if err != nil {
		return nil, err
	}
	return p.ParseRows(rows), nil
}

// RowsFromSheetValues adapts a Google Sheets value range to parser rows.
func RowsFromSheetValues(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v == nil {
				continue
			}
			cells[j] = fmt.Sprint(v)
		}
		rows[i] = cells
	}
	return rows
}
