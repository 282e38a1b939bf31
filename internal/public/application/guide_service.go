package application

import (
	"context"

	"github.com/norbulab/sikkim-trails-services/api/internal/public/domain"
)

// guideMatchService is the concrete implementation of GuideMatchService.
type guideMatchService struct {
	repo GuideRepository
}

// NewGuideMatchService creates a new guide matching service.
func NewGuideMatchService(repo GuideRepository) GuideMatchService {
	return &guideMatchService{repo: repo}
}

func (s *guideMatchService) List(ctx context.Context) ([]domain.Guide, error) {
	return s.repo.FindAll(ctx)
}

// Match fetches the guide pool and filters it against the preference.
// A fetch failure is returned as-is: the transport layer decides whether
// to keep the user-facing empty-result fallback.
func (s *guideMatchService) Match(ctx context.Context, pref domain.Preference) ([]domain.Guide, error) {
	guides, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.MatchGuides(guides, pref), nil
}
