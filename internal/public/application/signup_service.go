package application

import (
	"context"
	"time"

	"github.com/norbulab/sikkim-trails-services/api/internal/public/domain"
)

type signupService struct {
	identities IdentityProvider
	profiles   ProfileRepository
	now        func() time.Time
}

// NewSignupService creates a new anonymous signup service.
func NewSignupService(identities IdentityProvider, profiles ProfileRepository) SignupService {
	return &signupService{
		identities: identities,
		profiles:   profiles,
		now:        time.Now,
	}
}

// Signup requests an anonymous identity and then persists the profile at
// the issued id. A profile write failure is reported without rolling the
// identity back, leaving an identity with no profile behind; callers see
// the error and may retry the whole flow.
func (s *signupService) Signup(ctx context.Context, cmd SignupCommand) (*SignupResult, error) {
	identity, err := s.identities.SignInAnonymously(ctx)
	if err != nil {
		return nil, &domain.AuthError{Reason: "anonymous sign-in failed", Err: err}
	}

	profile := domain.UserProfile{
		ID:        identity.ID,
		Name:      cmd.Name,
		Phone:     cmd.Phone,
		Email:     cmd.Email,
		Anonymous: true,
		CreatedAt: s.now().UTC(),
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	return &SignupResult{ID: identity.ID, Token: identity.Token}, nil
}
