package mockapi

import "wedding-album-backend/models"

// Mot de passe partagé des mariages de démonstration
const demoPassword = "amicantik"

// SeedProjects retourne les quatre mariages de démonstration
// (mêmes données côté client et pour l'amorçage de la base du serveur)
func SeedProjects() []models.WeddingProject {
	return []models.WeddingProject{
		{
			ProjectID: "12345",
			Bride:     models.Personne{Name: "Sarah Johnson"},
			Groom:     models.Personne{Name: "Michael Smith"},
			Date:      "2025-05-15",
			Venue:     models.Venue{Name: "Rosewood Gardens", Address: "12 Rosewood Lane"},
			CoverImage: "https://images.unsplash.com/photo-1519741497674-611481863552" +
				"?ixlib=rb-1.2.1&auto=format&fit=crop&w=800&q=80",
			Password:   demoPassword,
			ThemeColor: "#b89f8d",
			IsActive:   true,
			Downloads:  156,
		},
		{
			ProjectID: "67890",
			Bride:     models.Personne{Name: "Emma Wilson"},
			Groom:     models.Personne{Name: "Daniel Brown"},
			Date:      "2025-06-20",
			Venue:     models.Venue{Name: "Lakeside Manor", Address: "3 Lakeside Drive"},
			CoverImage: "https://images.unsplash.com/photo-1529636444744-adffc9135a5e" +
				"?ixlib=rb-1.2.1&auto=format&fit=crop&w=800&q=80",
			Password:   demoPassword,
			ThemeColor: "#b89f8d",
			IsActive:   true,
			Downloads:  89,
		},
		{
			ProjectID: "24680",
			Bride:     models.Personne{Name: "Jennifer Davis"},
			Groom:     models.Personne{Name: "Christopher Lee"},
			Date:      "2025-07-10",
			Venue:     models.Venue{Name: "The Old Orchard", Address: "88 Orchard Road"},
			CoverImage: "https://images.unsplash.com/photo-1465495976277-4387d4b0b4c6" +
				"?ixlib=rb-1.2.1&auto=format&fit=crop&w=800&q=80",
			Password:   demoPassword,
			ThemeColor: "#b89f8d",
			IsActive:   true,
			Downloads:  212,
		},
		{
			ProjectID: "13579",
			Bride:     models.Personne{Name: "Jessica Martinez"},
			Groom:     models.Personne{Name: "Andrew Taylor"},
			Date:      "2025-08-05",
			Venue:     models.Venue{Name: "Seaview Terrace", Address: "1 Seaview Esplanade"},
			CoverImage: "https://images.unsplash.com/photo-1511285560929-80b456fea0bc" +
				"?ixlib=rb-1.2.1&auto=format&fit=crop&w=800&q=80",
			Password:   demoPassword,
			ThemeColor: "#b89f8d",
			IsActive:   true,
			Downloads:  178,
		},
	}
}
