package model

import "github.com/golang-jwt/jwt/v5"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	ExpiresIn int64  `json:"expires_in"`
}

// Claims tags the bearer with a role; no policy is attached to it.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
