package model

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are JWT claims for catalog administrators
type AdminClaims struct {
	AdminID string `json:"adminId"`
	jwt.RegisteredClaims
}

// RespondentClaims are JWT claims for a respondent's check-in token
type RespondentClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for admin login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token   string `json:"token"`
	AdminID string `json:"adminId"`
}

// RespondentTokenRequest asks for a check-in token for one user
type RespondentTokenRequest struct {
	UserID string `json:"userId"`
}

// RespondentTokenResponse carries a respondent token
type RespondentTokenResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	ExpiresAt int64  `json:"expiresAt"`
}
