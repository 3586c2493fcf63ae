package auth

import (
	"fmt"
	"time"

	"github.com/Pranavipulluri/break-even/internal/config"
	"github.com/Pranavipulluri/break-even/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

type JWTService struct {
	secret string
	expiry time.Duration
}

type CustomerClaims struct {
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	BusinessID string `json:"business_id,omitempty"`
	jwt.RegisteredClaims
}

func NewJWTService(cfg *config.Config) *JWTService {
	return &JWTService{
		secret: cfg.JWT.Secret,
		expiry: cfg.JWT.Expiry,
	}
}

func (j *JWTService) GenerateToken(customer *domain.Customer) (string, error) {
	now := time.Now()

	claims := CustomerClaims{
		Sub:   customer.ID.String(),
		Email: customer.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "break-even",
			Audience:  jwt.ClaimStrings{"break-even-api"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiry)),
		},
	}
	if customer.BusinessID != nil {
		claims.BusinessID = customer.BusinessID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (j *JWTService) ValidateToken(tokenString string) (*CustomerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomerClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.Issuer != "break-even" {
		return nil, fmt.Errorf("invalid issuer")
	}

	return claims, nil
}

func (j *JWTService) GetExpiry() time.Duration {
	return j.expiry
}
