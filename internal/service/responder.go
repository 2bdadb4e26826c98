package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/louardi/souk-assistant-go/internal/domain"
	"github.com/louardi/souk-assistant-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("service")

// Responder maps a classification result to a reply: one handler per intent,
// each a pure function of the entities and the catalog snapshot. No handler
// mutates anything — cart actions, navigation and message persistence are the
// caller's business.
type Responder struct {
	products   port.ProductCatalog
	categories port.CategoryCatalog
	limit      int
	randIntn   func(n int) int
	logger     *zap.Logger
}

// NewResponder creates the dispatcher. limit caps every returned product
// list (the storefront shows at most 4 cards per bubble). randIntn picks
// among canned reply variants; injecting it keeps tests deterministic.
func NewResponder(
	products port.ProductCatalog,
	categories port.CategoryCatalog,
	limit int,
	randIntn func(n int) int,
	logger *zap.Logger,
) *Responder {
	return &Responder{
		products:   products,
		categories: categories,
		limit:      limit,
		randIntn:   randIntn,
		logger:     logger,
	}
}

var greetingVariants = []string{
	"Bonjour 👋 ! Je suis votre assistant shopping. Comment puis-je vous aider aujourd'hui ?",
	"Salut ! Prêt(e) à trouver le produit parfait ? Dites-moi ce que vous cherchez.",
	"Bonjour ! Posez-moi une question sur nos produits, vos commandes ou nos promotions.",
}

var thanksVariants = []string{
	"Avec plaisir ! N'hésitez pas si vous avez d'autres questions. 😊",
	"Je vous en prie ! Bon shopping !",
	"C'est un plaisir de vous aider. À bientôt !",
}

var defaultSuggestions = []string{
	"Voir les produits populaires",
	"Parcourir les catégories",
	"Suivre ma commande",
	"Besoin d'aide",
}

// Respond dispatches the classified message to its intent handler.
func (r *Responder) Respond(ctx context.Context, result domain.NLPResult) (*domain.BotReply, error) {
	ctx, span := tracer.Start(ctx, "Responder.Respond")
	defer span.End()

	switch result.Intent {
	case domain.IntentGreeting:
		return r.greeting(), nil
	case domain.IntentProductSearch:
		return r.productSearch(ctx, result.Entities)
	case domain.IntentCategoryBrowse:
		return r.categoryBrowse(ctx, result.Entities)
	case domain.IntentRecommendation:
		return r.recommendation(ctx)
	case domain.IntentOrderStatus:
		return r.orderStatus(), nil
	case domain.IntentDeliveryTracking:
		return r.deliveryTracking(), nil
	case domain.IntentPriceInquiry:
		return r.priceInquiry(ctx, result.Entities)
	case domain.IntentHelp:
		return r.help(), nil
	case domain.IntentPayment:
		return r.payment(), nil
	case domain.IntentReturn:
		return r.returnPolicy(), nil
	case domain.IntentThanks:
		return r.thanks(), nil
	case domain.IntentAddToCart:
		return r.addToCart(ctx)
	default:
		return r.unknown(ctx)
	}
}

// truncate caps a product list at the configured response limit.
func (r *Responder) truncate(products []domain.Product) []domain.Product {
	if len(products) > r.limit {
		return products[:r.limit]
	}
	return products
}

func (r *Responder) greeting() *domain.BotReply {
	return &domain.BotReply{
		Text:        greetingVariants[r.randIntn(len(greetingVariants))],
		Suggestions: defaultSuggestions,
	}
}

// productSearch resolves in order: detected category, then keyword search
// (with a top-rated fallback when nothing matches), then the catalog head.
func (r *Responder) productSearch(ctx context.Context, entities domain.Entities) (*domain.BotReply, error) {
	if entities.Category != "" {
		cat, err := r.categories.CategoryByName(ctx, entities.Category)
		if err != nil {
			return nil, err
		}
		products, err := r.products.ByCategory(ctx, cat.ID)
		if err != nil {
			return nil, err
		}
		return &domain.BotReply{
			Text:     fmt.Sprintf("Voici ce que j'ai trouvé dans **%s** :", cat.Name),
			Products: r.truncate(products),
			Category: cat,
		}, nil
	}

	if len(entities.Keywords) > 0 {
		products, err := r.products.Search(ctx, strings.Join(entities.Keywords, " "))
		if err != nil {
			return nil, err
		}
		if len(products) == 0 {
			top, err := r.products.TopRated(ctx, r.limit)
			if err != nil {
				return nil, err
			}
			return &domain.BotReply{
				Text:     "Je n'ai rien trouvé d'exact, mais voici nos produits les mieux notés :",
				Products: top,
			}, nil
		}
		return &domain.BotReply{
			Text:     "Voici les produits qui correspondent à votre recherche :",
			Products: r.truncate(products),
		}, nil
	}

	all, err := r.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.BotReply{
		Text:     "Voici quelques produits de notre catalogue :",
		Products: r.truncate(all),
	}, nil
}

func (r *Responder) categoryBrowse(ctx context.Context, entities domain.Entities) (*domain.BotReply, error) {
	if entities.Category != "" {
		cat, err := r.categories.CategoryByName(ctx, entities.Category)
		if err != nil {
			return nil, err
		}
		products, err := r.products.ByCategory(ctx, cat.ID)
		if err != nil {
			return nil, err
		}
		return &domain.BotReply{
			Text:     fmt.Sprintf("La catégorie **%s** %s :", cat.Name, cat.Icon),
			Products: r.truncate(products),
			Category: cat,
		}, nil
	}

	cats, err := r.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("Voici nos catégories :\n")
	suggestions := make([]string, 0, len(cats))
	for _, c := range cats {
		fmt.Fprintf(&sb, "%s **%s**\n", c.Icon, c.Name)
		suggestions = append(suggestions, c.Name)
	}
	return &domain.BotReply{
		Text:        sb.String(),
		Suggestions: suggestions,
	}, nil
}

// recommendation serves the synchronous chat path: top-rated products with
// the assistant framing. The personalized path lives in Recommender.
func (r *Responder) recommendation(ctx context.Context) (*domain.BotReply, error) {
	top, err := r.products.TopRated(ctx, r.limit)
	if err != nil {
		return nil, err
	}
	return &domain.BotReply{
		Text:     "🤖 D'après les avis de nos clients, voici mes recommandations :",
		Products: top,
	}, nil
}

func (r *Responder) orderStatus() *domain.BotReply {
	return &domain.BotReply{
		Text: "Pour suivre une commande, indiquez son numéro (ex : **CMD-2024-1538**).\n" +
			"Vous retrouvez tous vos numéros de commande dans **Mon compte → Mes commandes**.",
		Suggestions: []string{"Suivre ma livraison", "Contacter le support"},
	}
}

func (r *Responder) deliveryTracking() *domain.BotReply {
	return &domain.BotReply{
		Text: "📦 Vos colis sont livrés en **2 à 5 jours ouvrés** partout au Maroc.\n" +
			"Dès l'expédition, vous recevez un SMS avec le lien de suivi du transporteur.",
	}
}

func (r *Responder) priceInquiry(ctx context.Context, entities domain.Entities) (*domain.BotReply, error) {
	if entities.PriceRange != nil && entities.PriceRange.Max != nil {
		max := *entities.PriceRange.Max
		all, err := r.products.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		var within []domain.Product
		for _, p := range all {
			if p.Price <= max {
				within = append(within, p)
			}
		}
		return &domain.BotReply{
			Text:     fmt.Sprintf("Voici nos produits à moins de **%.0f MAD** :", max),
			Products: r.truncate(within),
		}, nil
	}

	promos, err := r.products.Promotional(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.BotReply{
		Text:     "Voici nos offres du moment :",
		Products: r.truncate(promos),
	}, nil
}

func (r *Responder) help() *domain.BotReply {
	return &domain.BotReply{
		Text: "Je peux vous aider à :\n" +
			"🔍 Chercher un produit\n" +
			"🗂️ Parcourir les catégories\n" +
			"📦 Suivre une commande ou une livraison\n" +
			"💳 Répondre sur le paiement et les retours\n" +
			"Dites-moi simplement ce qu'il vous faut !",
		Suggestions: defaultSuggestions,
	}
}

func (r *Responder) payment() *domain.BotReply {
	return &domain.BotReply{
		Text: "💳 Nous acceptons :\n" +
			"• Carte bancaire (Visa, Mastercard, CMI)\n" +
			"• Paiement à la livraison (espèces)\n" +
			"• Virement bancaire\n" +
			"Tous les paiements en ligne sont sécurisés.",
	}
}

func (r *Responder) returnPolicy() *domain.BotReply {
	return &domain.BotReply{
		Text: "🔄 Vous disposez de **14 jours** après réception pour retourner un article " +
			"dans son emballage d'origine. Le remboursement est effectué sous 7 jours " +
			"après réception du retour. Lancez la demande depuis **Mon compte → Mes commandes**.",
	}
}

func (r *Responder) thanks() *domain.BotReply {
	return &domain.BotReply{
		Text: thanksVariants[r.randIntn(len(thanksVariants))],
	}
}

func (r *Responder) addToCart(ctx context.Context) (*domain.BotReply, error) {
	all, err := r.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.BotReply{
		Text: "Pour ajouter un article, cliquez sur **Ajouter au panier** sur sa fiche produit. " +
			"En voici quelques-uns pour commencer :",
		Products: r.truncate(all),
	}, nil
}

func (r *Responder) unknown(ctx context.Context) (*domain.BotReply, error) {
	top, err := r.products.TopRated(ctx, r.limit)
	if err != nil {
		return nil, err
	}
	return &domain.BotReply{
		Text: "Désolé, je n'ai pas bien compris. 😅 Reformulez votre question, " +
			"ou jetez un œil à nos produits les mieux notés :",
		Products:    top,
		Suggestions: defaultSuggestions,
	}, nil
}
