package application

import (
	"context"
	"strings"

	admindomain "github.com/norbulab/sikkim-trails-services/api/internal/admin/domain"
)

// monasteryService implements MonasteryService.
type monasteryService struct {
	repo MonasteryRepository
}

func NewMonasteryService(repo MonasteryRepository) MonasteryService {
	return &monasteryService{repo: repo}
}

func (s *monasteryService) List(ctx context.Context) ([]admindomain.Monastery, error) {
	return s.repo.Find(ctx)
}

func (s *monasteryService) Detail(ctx context.Context, id string) (*admindomain.Monastery, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *monasteryService) Create(ctx context.Context, cmd UpsertMonasteryCommand) (*admindomain.Monastery, error) {
	monastery := monasteryFromCommand(cmd)
	if err := monastery.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, monastery); err != nil {
		return nil, err
	}
	return monastery, nil
}

func (s *monasteryService) Update(ctx context.Context, id string, cmd UpsertMonasteryCommand) (*admindomain.Monastery, error) {
	monastery := monasteryFromCommand(cmd)
	monastery.ID = strings.TrimSpace(id)
	if err := monastery.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, monastery); err != nil {
		return nil, err
	}
	return monastery, nil
}

func (s *monasteryService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}

func monasteryFromCommand(cmd UpsertMonasteryCommand) *admindomain.Monastery {
	return &admindomain.Monastery{
		Name:        strings.TrimSpace(cmd.Name),
		Location:    strings.TrimSpace(cmd.Location),
		Description: strings.TrimSpace(cmd.Description),
		PhotoURL:    strings.TrimSpace(cmd.PhotoURL),
	}
}
