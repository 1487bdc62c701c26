package reconcile

import (
	"strings"

	"github.com/mamadbah2/livestock-pricing/internal/domain/models"
)

// categorySearchTerms names the farm-produce catalog entry behind each category.
var categorySearchTerms = map[models.Category]string{
	models.CategoryBeef:     "Beef",
	models.CategoryLamb:     "Lamb",
	models.CategoryMutton:   "Mutton",
	models.CategoryGoat:     "Goat",
	models.CategoryChicken:  "Chickens (Broilers)",
	models.CategoryPork:     "Pork",
	models.CategoryCatering: "Catering",
}

// serviceSearchTerms names the catalog entry behind each slaughter service.
var serviceSearchTerms = map[string]string{
	"cattle":  "Beef",
	"sheep":   "Lamb",
	"goat":    "Goat",
	"pig":     "Pork",
	"chicken": "Chickens (Broilers)",
}

// CategorySearchTerm returns the catalog search term for a category. Slaughter has
// none: its services resolve one by one.
func CategorySearchTerm(cat models.Category) (string, bool) {
	term, ok := categorySearchTerms[cat]
	return term, ok
}

// ServiceSearchTerm returns the catalog search term for a slaughter service key.
// Unknown services search by their own name.
func ServiceSearchTerm(service string) string {
	if term, ok := serviceSearchTerms[service]; ok {
		return term
	}
	return strings.ReplaceAll(service, "_", " ")
}

// matchName picks the first case-insensitive exact match, falling back to the first
// entry containing the term.
func matchName[T any](items []T, term string, names func(T) []string) (T, bool) {
	var zero T
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return zero, false
	}

	for _, item := range items {
		for _, name := range names(item) {
			if strings.ToLower(strings.TrimSpace(name)) == needle {
				return item, true
			}
		}
	}
	for _, item := range items {
		for _, name := range names(item) {
			if name != "" && strings.Contains(strings.ToLower(name), needle) {
				return item, true
			}
		}
	}
	return zero, false
}

// MatchProduce applies the match policy to a farm-produce search result.
func MatchProduce(items []models.FarmProduce, term string) (models.FarmProduce, bool) {
	return matchName(items, term, func(p models.FarmProduce) []string { return []string{p.Name} })
}

// MatchUser applies the match policy to a user search result, on display name or email.
func MatchUser(items []models.User, term string) (models.User, bool) {
	return matchName(items, term, func(u models.User) []string { return []string{u.DisplayName(), u.Email} })
}
