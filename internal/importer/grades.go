package importer

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/livestock-pricing/internal/domain/models"
)

// Aliases extends the built-in label tables. Keys are raw labels; they are
// normalised on load so "Prime Cut" and "prime_cut" are the same entry.
type Aliases struct {
	Categories map[string]models.Category            `yaml:"categories"`
	Grades     map[models.Category]map[string]string `yaml:"grades"`
}

// LoadAliases reads an alias file in YAML form.
func LoadAliases(path string) (*Aliases, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias file %s: %w", path, err)
	}

	var aliases Aliases
	if err := yaml.Unmarshal(raw, &aliases); err != nil {
		return nil, fmt.Errorf("parse alias file %s: %w", path, err)
	}

	for label, cat := range aliases.Categories {
		if !cat.Valid() {
			return nil, fmt.Errorf("alias file %s: category alias %q points at unknown category %q", path, label, cat)
		}
	}
	for cat := range aliases.Grades {
		if !cat.Valid() {
			return nil, fmt.Errorf("alias file %s: unknown grade table %q", path, cat)
		}
	}

	return &aliases, nil
}

var defaultCategoryAliases = map[string]models.Category{
	"beef":                models.CategoryBeef,
	"lamb":                models.CategoryLamb,
	"mutton":              models.CategoryMutton,
	"goat":                models.CategoryGoat,
	"goats":               models.CategoryGoat,
	"chevon":              models.CategoryGoat,
	"chicken":             models.CategoryChicken,
	"chickens":            models.CategoryChicken,
	"poultry":             models.CategoryChicken,
	"broilers":            models.CategoryChicken,
	"pork":                models.CategoryPork,
	"pig":                 models.CategoryPork,
	"pigs":                models.CategoryPork,
	"slaughter":           models.CategorySlaughter,
	"slaughtering":        models.CategorySlaughter,
	"slaughter_services":  models.CategorySlaughter,
	"slaughter_service":   models.CategorySlaughter,
	"abattoir_services":   models.CategorySlaughter,
	"catering":            models.CategoryCatering,
	"catering_products":   models.CategoryCatering,
	"catering_and_offals": models.CategoryCatering,
}

var defaultGradeAliases = map[models.Category]map[string]string{
	models.CategoryBeef: {
		"super":         "super",
		"super_grade":   "super",
		"grade_super":   "super",
		"choice":        "choice",
		"choice_grade":  "choice",
		"commercial":    "commercial",
		"economy":       "economy",
		"economy_grade": "economy",
		"manufacturing": "manufacturing",
		"manufacture":   "manufacturing",
		"condemned":     "condemned",
	},
	models.CategoryLamb: {
		"super":       "super",
		"super_grade": "super",
		"choice":      "choice",
		"standard":    "standard",
		"inferior":    "inferior",
	},
	models.CategoryMutton: {
		"super":       "super",
		"super_grade": "super",
		"choice":      "choice",
		"standard":    "standard",
		"ordinary":    "ordinary",
		"inferior":    "inferior",
	},
	models.CategoryGoat: {
		"super":       "super",
		"super_grade": "super",
		"choice":      "choice",
		"standard":    "standard",
		"inferior":    "inferior",
	},
	models.CategoryChicken: {
		"a":          "grade_a",
		"grade_a":    "grade_a",
		"a_grade":    "grade_a",
		"b":          "grade_b",
		"grade_b":    "grade_b",
		"b_grade":    "grade_b",
		"live":       "live_birds",
		"live_bird":  "live_birds",
		"live_birds": "live_birds",
		"off_layer":  "off_layers",
		"off_layers": "off_layers",
		"offlayer":   "off_layers",
		"offlayers":  "off_layers",
		"culls":      "off_layers",
	},
	models.CategoryPork: {
		"porker":        "porker",
		"porkers":       "porker",
		"baconer":       "baconer",
		"baconers":      "baconer",
		"sausage":       "sausage",
		"sausage_pig":   "sausage",
		"manufacturing": "manufacturing",
	},
	models.CategorySlaughter: {
		"cattle":   "cattle",
		"cow":      "cattle",
		"cows":     "cattle",
		"beef":     "cattle",
		"sheep":    "sheep",
		"lamb":     "sheep",
		"mutton":   "sheep",
		"goat":     "goat",
		"goats":    "goat",
		"pig":      "pig",
		"pigs":     "pig",
		"pork":     "pig",
		"chicken":  "chicken",
		"chickens": "chicken",
		"broilers": "chicken",
		"poultry":  "chicken",
	},
	models.CategoryCatering: {
		"offal":    "offal",
		"offals":   "offal",
		"heads":    "heads",
		"head":     "heads",
		"trotters": "trotters",
		"hides":    "hides",
		"skins":    "hides",
	},
}

// Mapper resolves loosely formatted labels to canonical keys.
type Mapper struct {
	categories map[string]models.Category
	grades     map[models.Category]map[string]string
}

// NewMapper builds a Mapper from the built-in tables, with overrides layered on top.
func NewMapper(overrides *Aliases) *Mapper {
	m := &Mapper{
		categories: make(map[string]models.Category, len(defaultCategoryAliases)),
		grades:     make(map[models.Category]map[string]string, len(defaultGradeAliases)),
	}
	for label, cat := range defaultCategoryAliases {
		m.categories[label] = cat
	}
	for cat, table := range defaultGradeAliases {
		copied := make(map[string]string, len(table))
		for label, key := range table {
			copied[label] = key
		}
		m.grades[cat] = copied
	}

	if overrides == nil {
		return m
	}
	for label, cat := range overrides.Categories {
		m.categories[NormalizeLabel(label)] = cat
	}
	for cat, table := range overrides.Grades {
		if m.grades[cat] == nil {
			m.grades[cat] = make(map[string]string, len(table))
		}
		for label, key := range table {
			m.grades[cat][NormalizeLabel(label)] = NormalizeLabel(key)
		}
	}
	return m
}

// Category maps a category heading such as "BEEF" or "Slaughter Services".
func (m *Mapper) Category(label string) (models.Category, bool) {
	cat, ok := m.categories[NormalizeLabel(label)]
	return cat, ok
}

// GradeKey maps a grade label to its canonical schema key. Labels missing from the
// table pass through in normalised form so new grades added by the backend still
// reach the form.
func (m *Mapper) GradeKey(cat models.Category, label string) string {
	key := NormalizeLabel(label)
	if canonical, ok := m.grades[cat][key]; ok {
		return canonical
	}
	return key
}

// NormalizeLabel case-folds, turns whitespace runs into underscores and strips
// punctuation.
func NormalizeLabel(label string) string {
	var b strings.Builder
	b.Grow(len(label))

	pendingUnderscore := false
	for _, r := range strings.TrimSpace(label) {
		switch {
		case unicode.IsSpace(r) || r == '_':
			pendingUnderscore = b.Len() > 0
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingUnderscore {
				b.WriteByte('_')
				pendingUnderscore = false
			}
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
