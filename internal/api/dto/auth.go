package dto

import (
	"github.com/webdrive/webdrive_api/internal/identity"
)

type LoginRequest struct {
	AuthCode string `json:"auth_code" validate:"required"`
}

type UserInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Wallet  string `json:"wallet,omitempty"`
	Picture string `json:"picture,omitempty"`
}

type LoginResponse struct {
	User         UserInfo `json:"user"`
	SessionToken string   `json:"session_token"`
}

func NewLoginResponse(user identity.User, token string) LoginResponse {
	info := UserInfo{
		ID:      user.ID,
		Name:    user.Name,
		Picture: user.Picture,
	}
	if user.Email != nil {
		info.Email = user.Email.Address
	}
	if user.Wallet != nil {
		info.Wallet = user.Wallet.Address
	}

	return LoginResponse{
		User:         info,
		SessionToken: token,
	}
}
