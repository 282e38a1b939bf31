package admin

import (
	"time"

	admindomain "github.com/norbulab/sikkim-trails-services/api/internal/admin/domain"
)

type monasteryRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoURL"`
}

type monasteryResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Location    string     `json:"location,omitempty"`
	Description string     `json:"description,omitempty"`
	PhotoURL    string     `json:"photoURL,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type guideRequest struct {
	Name      string   `json:"name"`
	Languages []string `json:"languages"`
	Price     float64  `json:"price"`
	Rating    float64  `json:"rating"`
	Skills    []string `json:"skills"`
	PhotoURL  string   `json:"photoURL"`
}

type guideResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Languages []string   `json:"languages"`
	Price     float64    `json:"price"`
	Rating    float64    `json:"rating,omitempty"`
	Skills    []string   `json:"skills,omitempty"`
	PhotoURL  string     `json:"photoURL,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func buildMonasteryResponse(m admindomain.Monastery) monasteryResponse {
	resp := monasteryResponse{
		ID:          m.ID,
		Name:        m.Name,
		Location:    m.Location,
		Description: m.Description,
		PhotoURL:    m.PhotoURL,
	}
	if !m.CreatedAt.IsZero() {
		created := m.CreatedAt
		resp.CreatedAt = &created
	}
	if !m.UpdatedAt.IsZero() {
		updated := m.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}

func buildGuideResponse(g admindomain.Guide) guideResponse {
	resp := guideResponse{
		ID:        g.ID,
		Name:      g.Name,
		Languages: g.Languages,
		Price:     g.Price,
		Rating:    g.Rating,
		Skills:    g.Skills,
		PhotoURL:  g.PhotoURL,
	}
	if !g.CreatedAt.IsZero() {
		created := g.CreatedAt
		resp.CreatedAt = &created
	}
	if !g.UpdatedAt.IsZero() {
		updated := g.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}
