package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the JWT claims for a VibeCode identity token.
// It carries the standard claims plus the fields the collaboration relay
// attaches to every authenticated connection.
type Payload struct {
	// StandardClaims embeds Exp, Iat, and Iss, used for token validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// ID is the authenticated user's unique identifier (the relay's subject id).
	ID string `json:"id"`

	// Email is the account email, attached to the connection identity at handshake.
	Email string `json:"email"`

	// Name is the display name shown to collaborators.
	Name string `json:"name,omitempty"`
}
