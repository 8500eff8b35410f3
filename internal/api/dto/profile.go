package dto

import (
	"github.com/webdrive/webdrive_api/internal/models"
)

type ProfileResponse models.Profile

type UpdateProfileRequest struct {
	DisplayName   string `json:"displayName" validate:"required,max=128"`
	Email         string `json:"email" validate:"omitempty,email"`
	WalletAddress string `json:"walletAddress" validate:"max=256"`
}

func (r *UpdateProfileRequest) ToModel() models.Profile {
	return models.Profile{
		DisplayName:   r.DisplayName,
		Email:         r.Email,
		WalletAddress: r.WalletAddress,
	}
}

type SetProfileFieldRequest struct {
	Field string `json:"field" validate:"required,oneof=displayName email walletAddress"`
	Value string `json:"value" validate:"max=256"`
}
