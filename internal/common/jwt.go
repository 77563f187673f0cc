package common

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte(os.Getenv("JWT_SECRET"))

// SetJWTSecret overrides the signing secret. Intended for wiring from config
// and for tests; production reads JWT_SECRET at startup.
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

// Claims represents the data stored in a user access token.
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"` // farmer or admin
	jwt.RegisteredClaims
}

// AgentClaims is the short-lived credential scheme for the automated agent.
// The token is bound to the one farmer the agent is serving.
type AgentClaims struct {
	FarmerID string `json:"farmer_id"`
	Name     string `json:"name"`
	Role     string `json:"role"` // always "assistant"
	jwt.RegisteredClaims
}

func GenerateToken(userID, name, role string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		Name:   name,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "kisaanchat",
			Subject:   "user-auth",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(jwtSecret)
}

// GenerateAgentToken issues a short-lived token that lets the automated
// agent connect on behalf of a single farmer.
func GenerateAgentToken(farmerID string, ttl time.Duration) (string, error) {
	claims := &AgentClaims{
		FarmerID: farmerID,
		Name:     "Kisaan Sahayak",
		Role:     "assistant",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "kisaanchat",
			Subject:   "agent-auth",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(jwtSecret)
}

func ValidToken(tokenstring string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenstring, &Claims{}, keyFunc)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" {
		return nil, errors.New("token carries no user id")
	}
	return claims, nil
}

func ValidAgentToken(tokenstring string) (*AgentClaims, error) {
	token, err := jwt.ParseWithClaims(tokenstring, &AgentClaims{}, keyFunc)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AgentClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid agent token")
	}
	if claims.Role != "assistant" || claims.FarmerID == "" {
		return nil, errors.New("token is not an agent credential")
	}
	return claims, nil
}

func keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return jwtSecret, nil
}
