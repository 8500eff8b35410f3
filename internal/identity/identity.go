// Package identity wraps the external identity provider. The provider owns
// authentication, linked accounts, and session state; this service only
// consumes user ids, optional profile fields, and the ready/authenticated
// signals.
package identity

import (
	"context"

	"github.com/webdrive/webdrive_api/internal/models"
)

type EmailAccount struct {
	Address string `json:"address"`
}

type WalletAccount struct {
	Address string `json:"address"`
}

// User is the provider's view of an account. All profile fields are optional.
type User struct {
	ID      string         `json:"id"`
	Name    string         `json:"name,omitempty"`
	Email   *EmailAccount  `json:"email,omitempty"`
	Wallet  *WalletAccount `json:"wallet,omitempty"`
	Picture string         `json:"picture,omitempty"`
}

// Session is the provider's answer to a login: the user plus readiness and
// authentication flags.
type Session struct {
	User          User `json:"user"`
	Ready         bool `json:"ready"`
	Authenticated bool `json:"authenticated"`
}

// ProfileDefaults projects the provider-supplied fields into a profile used
// when the user has no stored record yet.
func (u User) ProfileDefaults() models.Profile {
	profile := models.Profile{
		DisplayName: u.Name,
	}
	if u.Email != nil {
		profile.Email = u.Email.Address
	}
	if u.Wallet != nil {
		profile.WalletAddress = u.Wallet.Address
	}
	return profile
}

type Provider interface {
	Login(ctx context.Context, authCode string) (*Session, error)
	Logout(ctx context.Context, userID string) error
	LinkEmail(ctx context.Context, userID string) (string, error)
	LinkWallet(ctx context.Context, userID string) (string, error)
	User(ctx context.Context, userID string) (*User, error)
}
