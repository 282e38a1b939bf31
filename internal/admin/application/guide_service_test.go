package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	admindomain "github.com/norbulab/sikkim-trails-services/api/internal/admin/domain"
)

type stubGuideRepository struct {
	guides  []admindomain.Guide
	created []*admindomain.Guide
	updated []*admindomain.Guide
	deleted []string
	err     error
}

func (r *stubGuideRepository) Find(_ context.Context) ([]admindomain.Guide, error) {
	return r.guides, r.err
}

func (r *stubGuideRepository) FindByID(_ context.Context, id string) (*admindomain.Guide, error) {
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.guides {
		if r.guides[i].ID == id {
			return &r.guides[i], nil
		}
	}
	return nil, nil
}

func (r *stubGuideRepository) Create(_ context.Context, guide *admindomain.Guide) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, guide)
	return nil
}

func (r *stubGuideRepository) Update(_ context.Context, guide *admindomain.Guide) error {
	if r.err != nil {
		return r.err
	}
	r.updated = append(r.updated, guide)
	return nil
}

func (r *stubGuideRepository) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	r.deleted = append(r.deleted, id)
	return nil
}

func TestGuideServiceCreate(t *testing.T) {
	repo := &stubGuideRepository{}
	service := NewGuideService(repo)

	guide, err := service.Create(context.Background(), UpsertGuideCommand{
		Name:      "  Tashi Dorje  ",
		Languages: []string{" English ", "", "Hindi"},
		Price:     50,
		Rating:    4.8,
		Skills:    []string{" History ", ""},
	})
	require.NoError(t, err)
	require.Equal(t, "Tashi Dorje", guide.Name)
	require.Equal(t, []string{"English", "Hindi"}, guide.Languages)
	require.Equal(t, []string{"History"}, guide.Skills)
	require.Len(t, repo.created, 1)
}

func TestGuideServiceCreateRejectsInvalidCommands(t *testing.T) {
	repo := &stubGuideRepository{}
	service := NewGuideService(repo)

	_, err := service.Create(context.Background(), UpsertGuideCommand{
		Name:      "Tashi Dorje",
		Languages: []string{"  "},
		Price:     50,
	})
	require.Error(t, err)
	require.Empty(t, repo.created)
}

func TestGuideServiceUpdate(t *testing.T) {
	repo := &stubGuideRepository{}
	service := NewGuideService(repo)

	guide, err := service.Update(context.Background(), " g-1 ", UpsertGuideCommand{
		Name:      "Lhamo Doma",
		Languages: []string{"Hindi"},
		Price:     65,
		Rating:    4.9,
	})
	require.NoError(t, err)
	require.Equal(t, "g-1", guide.ID)
	require.Len(t, repo.updated, 1)
}

func TestGuideServiceDelete(t *testing.T) {
	repo := &stubGuideRepository{}
	service := NewGuideService(repo)

	require.NoError(t, service.Delete(context.Background(), " g-1 "))
	require.Equal(t, []string{"g-1"}, repo.deleted)
}
