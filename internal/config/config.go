package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// MustGet récupère une variable d'environnement obligatoire.
// Pas de valeur par défaut : on refuse de démarrer sans secret explicite.
func MustGet(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("❌ Variable d'environnement obligatoire manquante : %s", key)
	}
	return v
}

// Get récupère une variable d'environnement avec une valeur de repli.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
