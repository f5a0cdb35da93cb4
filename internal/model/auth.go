package model

// AuthRequest types
type RegisterRequest struct {
	Username        string `json:"username" binding:"required,alphanum,min=3,max=100"`
	Email           string `json:"email" binding:"required,email,max=100"`
	FirstName       string `json:"first_name" binding:"required,max=100"`
	LastName        string `json:"last_name" binding:"required,max=100"`
	Role            Role   `json:"role" binding:"required,oneof=HIM NURSE DOCTOR PHARMACY"`
	Phone           string `json:"phone" binding:"required,max=15"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
}

type CodeLoginRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Code     string `json:"code" binding:"required,len=6,numeric"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse types
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	Profile      *UserProfile `json:"profile,omitempty"`
}
