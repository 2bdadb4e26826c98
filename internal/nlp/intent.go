package nlp

import (
	"strings"

	"github.com/louardi/souk-assistant-go/internal/domain"
)

// intentDef binds one intent to its keyword patterns and scoring weight.
// The weight is a calibration knob: greetings and thanks are short messages
// where a single hit should dominate, so they weigh more than the broader
// shopping intents.
type intentDef struct {
	intent   domain.Intent
	patterns []string
	weight   float64
}

// intentTable is scanned in declaration order. Order matters twice: scoring
// iterates it, and BestIntent resolves equal scores in favor of the earlier
// entry. Matching is case-insensitive (input is normalized) but
// accent-sensitive, hence the accented/unaccented spelling pairs.
var intentTable = []intentDef{
	{domain.IntentGreeting, []string{
		"bonjour", "salut", "bonsoir", "coucou", "hello", "hey",
	}, 10},
	{domain.IntentProductSearch, []string{
		"cherche", "recherche", "trouve", "trouver", "produit", "article", "voir les",
	}, 8},
	{domain.IntentCategoryBrowse, []string{
		"catégorie", "categorie", "rayon", "parcourir",
		"électronique", "electronique", "accessoires", "maison", "mode", "sports", "beauté", "beaute",
	}, 9},
	{domain.IntentRecommendation, []string{
		"recommande", "recommandation", "conseille", "conseil", "suggère", "suggere", "suggestion", "meilleur",
	}, 9},
	{domain.IntentOrderStatus, []string{
		"commande", "statut", "où est ma commande", "ou est ma commande", "état de ma commande",
	}, 9},
	{domain.IntentDeliveryTracking, []string{
		"livraison", "livré", "livre", "colis", "expédition", "expedition", "suivre",
	}, 9},
	{domain.IntentPriceInquiry, []string{
		"prix", "combien", "tarif", "cher", "moins de", "budget", "promotion", "promo",
	}, 8},
	{domain.IntentHelp, []string{
		"aide", "aidez", "assistance", "comment faire", "support",
	}, 7},
	{domain.IntentPayment, []string{
		"paiement", "payer", "carte bancaire", "espèces", "especes", "cash", "à la livraison",
	}, 8},
	{domain.IntentReturn, []string{
		"retour", "retourner", "rembourse", "remboursement", "échanger", "echanger",
	}, 8},
	{domain.IntentThanks, []string{
		"merci", "thanks", "parfait", "génial", "genial", "super",
	}, 10},
	{domain.IntentAddToCart, []string{
		"ajouter au panier", "ajoute au panier", "au panier", "acheter",
	}, 8},
}

// ScoreIntents scores the normalized message against the intent table.
// Every pattern found as a substring adds that intent's weight, so
// "cherche un produit" scores product_search twice.
// The returned map always contains all intents, defaulting to 0.
func ScoreIntents(normalized string) map[domain.Intent]float64 {
	scores := make(map[domain.Intent]float64, len(intentTable)+1)
	for _, def := range intentTable {
		scores[def.intent] = 0
		for _, p := range def.patterns {
			if strings.Contains(normalized, p) {
				scores[def.intent] += def.weight
			}
		}
	}
	scores[domain.IntentUnknown] = 0
	return scores
}

// BestIntent picks the winning intent: linear scan in table order with a
// strict greater-than comparison, so the first-declared intent keeps ties.
// If nothing scored, the result is unknown at confidence 0.
func BestIntent(scores map[domain.Intent]float64) (domain.Intent, float64) {
	best := domain.IntentUnknown
	bestScore := 0.0
	for _, def := range intentTable {
		if scores[def.intent] > bestScore {
			best = def.intent
			bestScore = scores[def.intent]
		}
	}
	return best, bestScore
}

// Classify runs the full pipeline on a raw message: normalize, score,
// extract entities, select the best intent. It is a pure function and
// never fails: garbage in, unknown intent out.
func Classify(raw string) domain.NLPResult {
	normalized, tokens := Normalize(raw)
	scores := ScoreIntents(normalized)
	entities := ExtractEntities(normalized, tokens)
	intent, confidence := BestIntent(scores)

	return domain.NLPResult{
		Intent:     intent,
		Entities:   entities,
		Confidence: confidence,
	}
}
