package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims incluye los claims estándar JWT más la identidad de sesión.
// La sesión es una foto inmutable de la identidad al momento del login: un
// cambio posterior de rol o empresa no actualiza tokens ya emitidos.
type SessionClaims struct {
	jwt.RegisteredClaims
	ContractorID string `json:"contractor_id"`
	CompanyID    string `json:"company_id,omitempty"` // vacío = contractor sin empresa (onboarding incompleto)
	Role         string `json:"role"`                 // "owner_admin" | "office" | "tech"
	Email        string `json:"email"`
}

// Generate genera un token de sesión HS256 firmado. El claim ID (jti) permite
// revocar el token individual en logout sin invalidar el secret completo.
func Generate(secret, contractorID, companyID, role, email, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    issuer,
			Subject:   contractorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		ContractorID: contractorID,
		CompanyID:    companyID,
		Role:         role,
		Email:        email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve los claims de sesión.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*SessionClaims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
