package main

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// authenticateOperator checks the single configured operator credential.
// The hash comes from config so no user table is needed.
func authenticateOperator(cfg *Config, username, password string) bool {
	if username != cfg.Operator.Username || cfg.Operator.PasswordHash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(cfg.Operator.PasswordHash), []byte(password))
	return err == nil
}

func issueToken(secret, username string) (string, error) {
	claims := jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// HashPassword is used by deploy tooling to generate operator password hashes.
func HashPassword(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
