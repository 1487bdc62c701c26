package importer

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/livestock-pricing/internal/domain/models"
	"github.com/mamadbah2/livestock-pricing/internal/pricing"
)

// Fixed workbook layout, 0-based row indexes.
const (
	metadataRows = 6
	headerRow    = 7
	dataStartRow = 8
)

// Data columns, 0-based.
const (
	colCategory = iota
	colGrade
	colGradeCode
	colCollectedUSD
	colDeliveredUSD
	colCollectedZIG
	colDeliveredZIG
	colNotes
)

const noteMarker = "note:"

// ErrNoCategories is reported when a sheet carries no recognised livestock section.
var ErrNoCategories = errors.New("no livestock categories found in spreadsheet")

// ErrNotApplicable is returned when a result with parse errors is merged into a form.
var ErrNotApplicable = errors.New("import has errors and cannot be applied")

type parseState int

const (
	awaitingCategory parseState = iota
	inCategory
	done
)

// Parser turns price-list rows into a ParseResult.
type Parser struct {
	mapper *Mapper
	logger *zap.Logger
}

// NewParser builds a parser. A nil mapper uses the built-in label tables.
func NewParser(mapper *Mapper, logger *zap.Logger) *Parser {
	if mapper == nil {
		mapper = NewMapper(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{mapper: mapper, logger: logger}
}

// ParseRows parses rows with the default tables.
func ParseRows(rows [][]string) *models.ParseResult {
	return NewParser(nil, nil).ParseRows(rows)
}

// ParseRows walks the rows of one sheet: metadata first, then the category-scoped
// data rows.
func (p *Parser) ParseRows(rows [][]string) *models.ParseResult {
	result := &models.ParseResult{
		Metadata:  parseMetadata(rows),
		Prices:    make(map[models.Category]*models.ParsedCategory),
		Livestock: []string{},
		Notes:     []string{},
		Errors:    []string{},
		Warnings:  []string{},
	}

	if len(rows) > headerRow && !looksLikeHeader(rows[headerRow]) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("row %d does not look like the expected header row", headerRow+1))
	}

	state := awaitingCategory
	var (
		current      *models.ParsedCategory
		currentKey   models.Category
		currentLabel string
		ignoring     bool
		order        []models.Category
	)

	for i := dataStartRow; i < len(rows); i++ {
		cells := rows[i]
		number := i + 1

		if isNoteRow(cells) {
			if note := joinCells(cells[1:]); note != "" {
				result.Notes = append(result.Notes, note)
			}
			continue
		}

		row := toRow(cells, number)
		if row.Category == "" && row.Grade == "" {
			continue
		}

		if row.Category != "" {
			state = inCategory
			currentLabel = row.Category
			cat, ok := p.mapper.Category(row.Category)
			if !ok {
				ignoring = true
				current = nil
				result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: unknown livestock category %q ignored", number, row.Category))
			} else {
				ignoring = false
				currentKey = cat
				if _, seen := result.Prices[cat]; seen {
					result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: category %q repeated, earlier grades replaced", number, row.Category))
				} else {
					order = append(order, cat)
					result.Livestock = append(result.Livestock, row.Category)
				}
				current = &models.ParsedCategory{Label: row.Category, Grades: map[string]models.ParsedGrade{}, Order: []string{}}
				result.Prices[cat] = current
			}
			if row.Grade == "" {
				continue
			}
		}

		if state == awaitingCategory {
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: grade %q appears before any category", number, row.Grade))
			continue
		}
		if ignoring {
			continue
		}
		if row.Grade == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: prices without a grade under %q", number, currentLabel))
			continue
		}
		if !row.HasAnyPrice() {
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: grade %q has no prices", number, row.Grade))
			continue
		}

		key := p.mapper.GradeKey(currentKey, row.Grade)
		if _, seen := current.Grades[key]; !seen {
			current.Order = append(current.Order, key)
		}
		current.Grades[key] = models.ParsedGrade{
			Delivered:    row.DeliveredUSD,
			Collected:    row.CollectedUSD,
			DeliveredZIG: row.DeliveredZIG,
			CollectedZIG: row.CollectedZIG,
			GradeCode:    row.GradeCode,
			Notes:        row.Notes,
		}
	}
	state = done

	if len(result.Prices) == 0 {
		result.Errors = append(result.Errors, ErrNoCategories.Error())
	}
	for _, cat := range order {
		parsed := result.Prices[cat]
		if len(parsed.Grades) == 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("no grade prices found for %s", parsed.Label))
		}
	}

	p.logger.Debug("spreadsheet parsed",
		zap.Int("rows", len(rows)),
		zap.Strings("livestock", result.Livestock),
		zap.Int("errors", len(result.Errors)),
		zap.Int("warnings", len(result.Warnings)),
		zap.Bool("done", state == done))

	return result
}

func toRow(cells []string, number int) models.SpreadsheetRow {
	return models.SpreadsheetRow{
		Number:       number,
		Category:     cell(cells, colCategory),
		Grade:        cell(cells, colGrade),
		GradeCode:    cell(cells, colGradeCode),
		CollectedUSD: amount(cell(cells, colCollectedUSD)),
		DeliveredUSD: amount(cell(cells, colDeliveredUSD)),
		CollectedZIG: amount(cell(cells, colCollectedZIG)),
		DeliveredZIG: amount(cell(cells, colDeliveredZIG)),
		Notes:        cell(cells, colNotes),
	}
}

// amount returns nil for empty or unparsable cells so that absent prices stay
// distinguishable from zero.
func amount(raw string) *float64 {
	value, ok := pricing.ParseAmount(raw)
	if !ok {
		return nil
	}
	return &value
}

func cell(cells []string, index int) string {
	if index < len(cells) {
		return strings.TrimSpace(cells[index])
	}
	return ""
}

func isNoteRow(cells []string) bool {
	return strings.EqualFold(strings.ReplaceAll(cell(cells, 0), " ", ""), noteMarker)
}

func joinCells(cells []string) string {
	parts := make([]string, 0, len(cells))
	for _, c := range cells {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}

func looksLikeHeader(cells []string) bool {
	return strings.Contains(strings.ToLower(cell(cells, colCategory)), "category") ||
		strings.Contains(strings.ToLower(cell(cells, colGrade)), "grade")
}
