package identity

import "context"

// CustomerData is the profile an identity provider knows about the
// authenticated visitor.
type CustomerData struct {
	LastName  string `json:"lastname"`
	FirstName string `json:"firstname"`
	Email     string `json:"email"`
}

// IdentityProvider is the SSO contract consulted for rooms that
// require an authenticated visitor. Guest contact fields then come
// from the provider instead of the submission payload.
type IdentityProvider interface {
	IsAuthenticated(ctx context.Context) bool
	GetCustomerData(ctx context.Context) (CustomerData, error)
}

// NoopProvider is used when no SSO integration is configured. It never
// authenticates, so submissions to SSO-required rooms are rejected.
type NoopProvider struct{}

func (NoopProvider) IsAuthenticated(ctx context.Context) bool { return false }

func (NoopProvider) GetCustomerData(ctx context.Context) (CustomerData, error) {
	return CustomerData{}, nil
}
