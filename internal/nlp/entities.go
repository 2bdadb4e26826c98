package nlp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/louardi/souk-assistant-go/internal/domain"
)

// categoryDef binds a storefront category name to its detection keywords.
type categoryDef struct {
	name     string
	keywords []string
}

// categoryTable is scanned in order; the first category with any keyword hit
// wins and the scan stops there. Names must match the catalog seed exactly.
var categoryTable = []categoryDef{
	{"Électronique", []string{
		"électronique", "electronique", "téléphone", "telephone", "smartphone",
		"écouteur", "ecouteur", "casque", "ordinateur", "bluetooth", "montre connectée", "montre connectee",
	}},
	{"Accessoires", []string{
		"accessoire", "sac", "ceinture", "lunettes", "portefeuille", "bijou",
	}},
	{"Maison", []string{
		"maison", "cuisine", "décoration", "decoration", "lampe", "meuble", "tapis",
	}},
	{"Mode", []string{
		"mode", "vêtement", "vetement", "chemise", "robe", "chaussure", "pantalon", "veste",
	}},
	{"Sports", []string{
		"sport", "fitness", "yoga", "ballon", "vélo", "velo", "haltère", "haltere",
	}},
	{"Beauté", []string{
		"beauté", "beaute", "parfum", "crème", "creme", "maquillage", "soin",
	}},
}

// priceRe matches the first number in the message, optionally followed by a
// currency marker (500 MAD, 500dh, 500 dirhams).
var priceRe = regexp.MustCompile(`(?i)(\d+)\s*(mad|dh|dirhams?)?`)

// ExtractEntities scans the normalized message for a category, a price bound
// and the keywords that matched. It runs independently of intent scoring.
//
// The price direction heuristic only knows the French cues: moins/max/budget
// set an upper bound, plus/min a lower bound. A bare number with no
// directional word leaves the price range unset, since the number alone
// does not say which way to filter.
//
// ProductName is never populated; the field exists for interface
// compatibility with the storefront message shape.
func ExtractEntities(normalized string, _ []string) domain.Entities {
	entities := domain.Entities{Keywords: []string{}}

	for _, cat := range categoryTable {
		for _, kw := range cat.keywords {
			if strings.Contains(normalized, kw) {
				entities.Category = cat.name
				entities.Keywords = append(entities.Keywords, kw)
				break
			}
		}
		if entities.Category != "" {
			break
		}
	}

	if m := priceRe.FindStringSubmatch(normalized); m != nil {
		if amount, err := strconv.ParseFloat(m[1], 64); err == nil {
			// "min" must be tested before the max cues: "budget minimum 200"
			// carries both "budget" and "min", and means a lower bound.
			switch {
			case strings.Contains(normalized, "plus") ||
				strings.Contains(normalized, "min"):
				entities.PriceRange = &domain.PriceRange{Min: &amount}
			case strings.Contains(normalized, "moins") ||
				strings.Contains(normalized, "max") ||
				strings.Contains(normalized, "budget"):
				entities.PriceRange = &domain.PriceRange{Max: &amount}
			}
		}
	}

	return entities
}
