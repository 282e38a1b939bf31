package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGuideValidate(t *testing.T) {
	valid := Guide{
		Name:      "Tashi Dorje",
		Languages: []string{"English", "Hindi"},
		Price:     50,
		Rating:    4.8,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Guide)
	}{
		{name: "blank name", mutate: func(g *Guide) { g.Name = "  " }},
		{name: "no languages", mutate: func(g *Guide) { g.Languages = nil }},
		{name: "blank language", mutate: func(g *Guide) { g.Languages = []string{"English", " "} }},
		{name: "negative price", mutate: func(g *Guide) { g.Price = -1 }},
		{name: "rating above five", mutate: func(g *Guide) { g.Rating = 5.1 }},
		{name: "negative rating", mutate: func(g *Guide) { g.Rating = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guide := valid
			tt.mutate(&guide)
			require.Error(t, guide.Validate())
		})
	}
}

func TestMonasteryValidate(t *testing.T) {
	monastery := Monastery{Name: "Rumtek Monastery"}
	require.NoError(t, monastery.Validate())

	monastery.Name = "  "
	require.Error(t, monastery.Validate())
}
