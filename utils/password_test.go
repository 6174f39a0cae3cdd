package utils

import (
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("motdepasse")
	if err != nil {
		t.Fatalf("HashPassword() erreur = %v", err)
	}
	if hash == "" || hash == "motdepasse" {
		t.Error("HashPassword() doit retourner un hash non vide et différent du mot de passe")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("motdepasse")
	if err != nil {
		t.Fatalf("HashPassword() erreur = %v", err)
	}

	if !CheckPassword(hash, "motdepasse") {
		t.Error("CheckPassword() devrait accepter le bon mot de passe")
	}
	if CheckPassword(hash, "mauvais") {
		t.Error("CheckPassword() devrait refuser un mauvais mot de passe")
	}
}
