package types

import "github.com/golang-jwt/jwt/v5"

// Claims represents the app session JWT claims
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
