package nlp_test

import (
	"testing"

	"github.com/louardi/souk-assistant-go/internal/domain"
	"github.com/louardi/souk-assistant-go/internal/nlp"
)

func TestClassify_Greeting(t *testing.T) {
	for _, msg := range []string{"bonjour", "Salut !", "  BONSOIR  ", "hello"} {
		result := nlp.Classify(msg)
		if result.Intent != domain.IntentGreeting {
			t.Errorf("Classify(%q): expected greeting, got %s", msg, result.Intent)
		}
		if result.Confidence <= 0 {
			t.Errorf("Classify(%q): expected positive confidence, got %f", msg, result.Confidence)
		}
	}
}

func TestClassify_NoMatchIsUnknown(t *testing.T) {
	result := nlp.Classify("xyzzy qwerty 12abc")
	if result.Intent != domain.IntentUnknown {
		t.Errorf("expected unknown, got %s", result.Intent)
	}
	if result.Confidence != 0 {
		t.Errorf("expected confidence 0, got %f", result.Confidence)
	}
	if result.Entities.Keywords == nil {
		t.Error("keywords must never be nil")
	}
}

func TestClassify_EmptyInput(t *testing.T) {
	result := nlp.Classify("")
	if result.Intent != domain.IntentUnknown {
		t.Errorf("expected unknown for empty input, got %s", result.Intent)
	}
	if result.Confidence != 0 {
		t.Errorf("expected confidence 0, got %f", result.Confidence)
	}
}

func TestClassify_Intents(t *testing.T) {
	cases := []struct {
		message string
		want    domain.Intent
	}{
		{"je cherche un produit", domain.IntentProductSearch},
		{"montre-moi la catégorie électronique", domain.IntentCategoryBrowse},
		{"tu me recommandes quoi ?", domain.IntentRecommendation},
		{"où est ma commande ?", domain.IntentOrderStatus},
		{"suivre mon colis", domain.IntentDeliveryTracking},
		{"c'est combien le tarif ?", domain.IntentPriceInquiry},
		{"j'ai besoin d'aide", domain.IntentHelp},
		{"je peux payer par carte bancaire ?", domain.IntentPayment},
		{"je veux un remboursement", domain.IntentReturn},
		{"merci beaucoup", domain.IntentThanks},
		{"ajouter au panier svp", domain.IntentAddToCart},
	}

	for _, tc := range cases {
		result := nlp.Classify(tc.message)
		if result.Intent != tc.want {
			t.Errorf("Classify(%q): expected %s, got %s (confidence %.0f)",
				tc.message, tc.want, result.Intent, result.Confidence)
		}
	}
}

// Additive scoring: two pattern hits for the same intent accumulate.
func TestScoreIntents_Additive(t *testing.T) {
	single := nlp.ScoreIntents("je cherche")
	double := nlp.ScoreIntents("je cherche un produit")

	if double[domain.IntentProductSearch] <= single[domain.IntentProductSearch] {
		t.Errorf("expected additive scoring: single=%f double=%f",
			single[domain.IntentProductSearch], double[domain.IntentProductSearch])
	}
}

// Equal scores resolve to the intent declared earlier in the table.
// price_inquiry and payment both weigh 8; price_inquiry is declared first.
func TestBestIntent_TieBreakDeclarationOrder(t *testing.T) {
	scores := nlp.ScoreIntents("le prix du paiement")

	if scores[domain.IntentPriceInquiry] != scores[domain.IntentPayment] {
		t.Fatalf("test premise broken: expected equal scores, got %f vs %f",
			scores[domain.IntentPriceInquiry], scores[domain.IntentPayment])
	}

	intent, _ := nlp.BestIntent(scores)
	if intent != domain.IntentPriceInquiry {
		t.Errorf("expected price_inquiry to win the tie, got %s", intent)
	}
}

func TestBestIntent_AllZeroIsUnknown(t *testing.T) {
	scores := nlp.ScoreIntents("blorp")
	intent, confidence := nlp.BestIntent(scores)
	if intent != domain.IntentUnknown || confidence != 0 {
		t.Errorf("expected unknown/0, got %s/%f", intent, confidence)
	}
}

func TestNormalize(t *testing.T) {
	normalized, tokens := nlp.Normalize("  Bonjour le Monde  ")
	if normalized != "bonjour le monde" {
		t.Errorf("unexpected normalized string: %q", normalized)
	}
	if len(tokens) != 3 {
		t.Errorf("expected 3 tokens, got %d", len(tokens))
	}

	_, empty := nlp.Normalize("   ")
	if len(empty) != 0 {
		t.Errorf("expected no tokens for blank input, got %v", empty)
	}
}

// Accent sensitivity is preserved: the accented keyword matches, its
// stripped spelling is a separate table entry, and a half-stripped form
// matches neither.
func TestClassify_AccentSensitive(t *testing.T) {
	accented := nlp.Classify("montre-moi la catégorie")
	if accented.Intent != domain.IntentCategoryBrowse {
		t.Errorf("expected category_browse for accented keyword, got %s", accented.Intent)
	}

	stripped := nlp.Classify("montre-moi la categorie")
	if stripped.Intent != domain.IntentCategoryBrowse {
		t.Errorf("expected category_browse for unaccented spelling, got %s", stripped.Intent)
	}
}
