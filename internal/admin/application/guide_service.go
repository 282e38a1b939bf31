package application

import (
	"context"
	"strings"

	admindomain "github.com/norbulab/sikkim-trails-services/api/internal/admin/domain"
)

// guideService implements GuideService.
type guideService struct {
	repo GuideRepository
}

func NewGuideService(repo GuideRepository) GuideService {
	return &guideService{repo: repo}
}

func (s *guideService) List(ctx context.Context) ([]admindomain.Guide, error) {
	return s.repo.Find(ctx)
}

func (s *guideService) Detail(ctx context.Context, id string) (*admindomain.Guide, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *guideService) Create(ctx context.Context, cmd UpsertGuideCommand) (*admindomain.Guide, error) {
	guide := guideFromCommand(cmd)
	if err := guide.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, guide); err != nil {
		return nil, err
	}
	return guide, nil
}

func (s *guideService) Update(ctx context.Context, id string, cmd UpsertGuideCommand) (*admindomain.Guide, error) {
	guide := guideFromCommand(cmd)
	guide.ID = strings.TrimSpace(id)
	if err := guide.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, guide); err != nil {
		return nil, err
	}
	return guide, nil
}

func (s *guideService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}

func guideFromCommand(cmd UpsertGuideCommand) *admindomain.Guide {
	languages := make([]string, 0, len(cmd.Languages))
	for _, lang := range cmd.Languages {
		if trimmed := strings.TrimSpace(lang); trimmed != "" {
			languages = append(languages, trimmed)
		}
	}
	skills := make([]string, 0, len(cmd.Skills))
	for _, skill := range cmd.Skills {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return &admindomain.Guide{
		Name:      strings.TrimSpace(cmd.Name),
		Languages: languages,
		Price:     cmd.Price,
		Rating:    cmd.Rating,
		Skills:    skills,
		PhotoURL:  strings.TrimSpace(cmd.PhotoURL),
	}
}
