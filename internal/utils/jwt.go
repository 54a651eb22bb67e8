package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionDuration correspond à la durée de vie du cookie admin (7 jours)
const SessionDuration = 7 * 24 * time.Hour

var ErrInvalidSession = errors.New("session invalide ou expirée")

// CreateSessionToken émet le token de session admin signé en HS256.
// Aucun secret par défaut : JWT_SECRET est vérifié au démarrage.
func CreateSessionToken(username string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET manquant")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(SessionDuration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifySessionToken valide un token de session et retourne le username.
// JWT_SECRET_PREVIOUS est accepté en vérification seule, pour permettre
// la rotation du secret sans déconnecter les sessions en cours.
func VerifySessionToken(tokenString string) (string, error) {
	secrets := []string{os.Getenv("JWT_SECRET")}
	if prev := os.Getenv("JWT_SECRET_PREVIOUS"); prev != "" {
		secrets = append(secrets, prev)
	}

	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		username, err := verifyWithSecret(tokenString, secret)
		if err == nil {
			return username, nil
		}
	}

	return "", ErrInvalidSession
}

func verifyWithSecret(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSession
	}

	// jwt.Parse vérifie déjà exp, mais on refuse aussi un token sans claim exp
	if _, ok := claims["exp"].(float64); !ok {
		return "", ErrInvalidSession
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", ErrInvalidSession
	}

	return username, nil
}
