/*
Package user defines the identity value passed around the collaboration server.
*/
package user

// Identity is the authenticated principal behind a connection. It is derived
// once from a verified token at handshake and never mutated afterwards.
type Identity struct {
	// ID is the unique subject identifier of the user.
	ID string `json:"id"`

	// Email is the account email carried in the verified token.
	Email string `json:"email"`

	// Name is the display name shown to collaborators.
	Name string `json:"name,omitempty"`
}
