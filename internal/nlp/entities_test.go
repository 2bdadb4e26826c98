package nlp_test

import (
	"testing"

	"github.com/louardi/souk-assistant-go/internal/nlp"
)

func TestExtractEntities_Category(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"je cherche un écouteur bluetooth", "Électronique"},
		{"bluetooth écouteur je cherche", "Électronique"},
		{"un sac pour ma femme", "Accessoires"},
		{"une lampe pour le salon", "Maison"},
		{"une robe élégante", "Mode"},
		{"un tapis de yoga", "Maison"},
		{"un ballon de foot", "Sports"},
		{"un parfum pas cher", "Beauté"},
		{"rien de spécial", ""},
	}

	for _, tc := range cases {
		normalized, tokens := nlp.Normalize(tc.message)
		entities := nlp.ExtractEntities(normalized, tokens)
		if entities.Category != tc.want {
			t.Errorf("ExtractEntities(%q): expected category %q, got %q",
				tc.message, tc.want, entities.Category)
		}
	}
}

// Category detection stops at the first table entry with a hit, so the
// matched keyword lands in Keywords exactly once.
func TestExtractEntities_MatchedKeywordRecorded(t *testing.T) {
	normalized, tokens := nlp.Normalize("je cherche un smartphone")
	entities := nlp.ExtractEntities(normalized, tokens)

	if entities.Category != "Électronique" {
		t.Fatalf("expected Électronique, got %q", entities.Category)
	}
	if len(entities.Keywords) != 1 || entities.Keywords[0] != "smartphone" {
		t.Errorf("expected keywords [smartphone], got %v", entities.Keywords)
	}
}

func TestExtractEntities_PriceMax(t *testing.T) {
	normalized, tokens := nlp.Normalize("produits à moins de 500 MAD")
	entities := nlp.ExtractEntities(normalized, tokens)

	if entities.PriceRange == nil || entities.PriceRange.Max == nil {
		t.Fatal("expected a max price bound")
	}
	if *entities.PriceRange.Max != 500 {
		t.Errorf("expected max 500, got %f", *entities.PriceRange.Max)
	}
	if entities.PriceRange.Min != nil {
		t.Error("min must not be set alongside max")
	}
}

func TestExtractEntities_PriceMin(t *testing.T) {
	normalized, tokens := nlp.Normalize("budget minimum 200")
	entities := nlp.ExtractEntities(normalized, tokens)

	if entities.PriceRange == nil || entities.PriceRange.Min == nil {
		t.Fatal("expected a min price bound")
	}
	if *entities.PriceRange.Min != 200 {
		t.Errorf("expected min 200, got %f", *entities.PriceRange.Min)
	}
	if entities.PriceRange.Max != nil {
		t.Error("max must not be set alongside min")
	}
}

func TestExtractEntities_BareNumberNoDirection(t *testing.T) {
	normalized, tokens := nlp.Normalize("je regarde le modèle 500")
	entities := nlp.ExtractEntities(normalized, tokens)

	if entities.PriceRange != nil {
		t.Errorf("expected no price range for a bare number, got %+v", entities.PriceRange)
	}
}

func TestExtractEntities_CurrencySuffixes(t *testing.T) {
	for _, msg := range []string{"maximum 300 dh", "maximum 300dh", "maximum 300 dirhams", "maximum 300"} {
		normalized, tokens := nlp.Normalize(msg)
		entities := nlp.ExtractEntities(normalized, tokens)
		if entities.PriceRange == nil || entities.PriceRange.Max == nil || *entities.PriceRange.Max != 300 {
			t.Errorf("ExtractEntities(%q): expected max 300, got %+v", msg, entities.PriceRange)
		}
	}
}

func TestExtractEntities_ProductNameNeverSet(t *testing.T) {
	normalized, tokens := nlp.Normalize("je cherche le casque Nova Pro")
	entities := nlp.ExtractEntities(normalized, tokens)
	if entities.ProductName != "" {
		t.Errorf("product name extraction is not implemented, got %q", entities.ProductName)
	}
}
