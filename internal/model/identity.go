package model

// Identity is an authenticated principal as reported by the external
// identity provider. It is opaque to this system except for the fields
// below; the metadata bag may carry a display name picked up at sign-up.
type Identity struct {
	ID             string         `json:"id"`
	Email          string         `json:"email"`
	EmailConfirmed bool           `json:"email_confirmed"`
	Metadata       map[string]any `json:"user_metadata"`
}

// DisplayName returns the best-effort name from the provider metadata:
// full_name, then name, then empty.
func (i *Identity) DisplayName() string {
	for _, key := range []string{"full_name", "name"} {
		if v, ok := i.Metadata[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// Session is the result of exchanging an authorization code.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

type ContextKey string

const (
	// IdentityIDKey holds the authenticated identity's subject id.
	IdentityIDKey ContextKey = "identityID"
	// AccessTokenKey holds the raw bearer token for provider passthrough calls.
	AccessTokenKey ContextKey = "accessToken"
)
