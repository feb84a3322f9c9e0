package models

import "github.com/golang-jwt/jwt/v5"

// AuthClaims is the payload carried by access, refresh and reset tokens.
type AuthClaims struct {
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
	jwt.RegisteredClaims
}
