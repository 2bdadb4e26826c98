package catalog

import "github.com/louardi/souk-assistant-go/internal/domain"

// SeedCategories is the fixed storefront taxonomy. IDs and names must match
// the entity extractor's category table; the assistant joins on the name.
func SeedCategories() []domain.Category {
	return []domain.Category{
		{ID: 1, Name: "Électronique", Icon: "💻", Color: "#4F8EF7",
			Keywords: []string{"téléphone", "écouteur", "casque", "ordinateur", "montre connectée"}},
		{ID: 2, Name: "Accessoires", Icon: "👜", Color: "#F7B84F",
			Keywords: []string{"sac", "ceinture", "lunettes", "portefeuille"}},
		{ID: 3, Name: "Maison", Icon: "🏠", Color: "#6BCB77",
			Keywords: []string{"cuisine", "décoration", "lampe", "meuble"}},
		{ID: 4, Name: "Mode", Icon: "👗", Color: "#C780FA",
			Keywords: []string{"vêtement", "chemise", "robe", "chaussure"}},
		{ID: 5, Name: "Sports", Icon: "⚽", Color: "#FF6B6B",
			Keywords: []string{"fitness", "yoga", "ballon", "vélo"}},
		{ID: 6, Name: "Beauté", Icon: "💄", Color: "#FF8FB1",
			Keywords: []string{"parfum", "crème", "maquillage", "soin"}},
	}
}

// SeedProducts is the demo catalog the assistant ships with when no Postgres
// backend is configured. Prices are in MAD. Order here is the catalog order:
// listings and default responses preserve it.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Écouteurs Bluetooth Nova", Price: 249, Image: "/img/p1.jpg",
			Rating: 4.7, Reviews: 312, Badge: domain.BadgePopular, CategoryID: 1,
			Description: "Écouteurs sans fil avec réduction de bruit et étui de charge.", Stock: 54},
		{ID: 2, Name: "Montre Connectée Pulse", Price: 499, Image: "/img/p2.jpg",
			Rating: 4.5, Reviews: 201, Badge: domain.BadgePromotion, CategoryID: 1,
			Description: "Montre connectée étanche, suivi du sommeil et du sport.", Stock: 31},
		{ID: 3, Name: "Casque Gaming Orion", Price: 399, Image: "/img/p3.jpg",
			Rating: 4.8, Reviews: 178, CategoryID: 1,
			Description: "Casque filaire avec micro antibruit pour le jeu.", Stock: 20},
		{ID: 4, Name: "Sac à Main Médina", Price: 329, Image: "/img/p4.jpg",
			Rating: 4.3, Reviews: 96, CategoryID: 2,
			Description: "Sac en cuir véritable cousu main.", Stock: 15},
		{ID: 5, Name: "Lunettes de Soleil Atlas", Price: 159, Image: "/img/p5.jpg",
			Rating: 4.1, Reviews: 64, Badge: domain.BadgePromotion, CategoryID: 2,
			Description: "Verres polarisés, protection UV400.", Stock: 80},
		{ID: 6, Name: "Lampe de Chevet Kasbah", Price: 119, Image: "/img/p6.jpg",
			Rating: 4.0, Reviews: 42, CategoryID: 3,
			Description: "Lampe artisanale en métal ajouré.", Stock: 25},
		{ID: 7, Name: "Service à Thé Marrakech", Price: 289, Image: "/img/p7.jpg",
			Rating: 4.6, Reviews: 132, Badge: domain.BadgePopular, CategoryID: 3,
			Description: "Théière et six verres décorés à la main.", Stock: 18},
		{ID: 8, Name: "Chemise Lin Essaouira", Price: 199, Image: "/img/p8.jpg",
			Rating: 4.2, Reviews: 58, CategoryID: 4,
			Description: "Chemise en lin léger, coupe droite.", Stock: 40},
		{ID: 9, Name: "Robe d'Été Jasmin", Price: 259, Image: "/img/p9.jpg",
			Rating: 4.4, Reviews: 87, Badge: domain.BadgePromotion, CategoryID: 4,
			Description: "Robe fluide imprimée, tissu respirant.", Stock: 22},
		{ID: 10, Name: "Tapis de Yoga Zen", Price: 149, Image: "/img/p10.jpg",
			Rating: 4.5, Reviews: 110, CategoryID: 5,
			Description: "Tapis antidérapant 6mm avec sangle de transport.", Stock: 60},
		{ID: 11, Name: "Ballon de Football Pro", Price: 179, Image: "/img/p11.jpg",
			Rating: 4.3, Reviews: 73, CategoryID: 5,
			Description: "Ballon taille 5 cousu machine.", Stock: 45},
		{ID: 12, Name: "Parfum Oud Royal", Price: 449, Image: "/img/p12.jpg",
			Rating: 4.9, Reviews: 265, Badge: domain.BadgePopular, CategoryID: 6,
			Description: "Eau de parfum boisée aux notes d'oud et d'ambre.", Stock: 12},
		{ID: 13, Name: "Crème Argan Pure", Price: 129, Image: "/img/p13.jpg",
			Rating: 4.6, Reviews: 148, CategoryID: 6,
			Description: "Crème hydratante à l'huile d'argan bio.", Stock: 70},
		{ID: 14, Name: "Haltères Réglables 20kg", Price: 549, Image: "/img/p14.jpg",
			Rating: 4.4, Reviews: 51, CategoryID: 5,
			Description: "Paire d'haltères réglables de 2 à 20 kg.", Stock: 9},
	}
}
