package models

// DefaultDisplayName is used when neither a stored profile nor the identity
// provider supplies a name.
const DefaultDisplayName = "User"

// Profile is the single editable profile record kept per user. JSON field
// names are part of the persisted record layout.
type Profile struct {
	DisplayName   string `json:"displayName"`
	Email         string `json:"email"`
	WalletAddress string `json:"walletAddress"`
}

// Session identifies the authenticated caller for the duration of a request.
type Session struct {
	UserID      string
	DisplayName string
}
