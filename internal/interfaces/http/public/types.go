package public

import (
	"math"

	"github.com/norbulab/sikkim-trails-services/api/internal/public/domain"
)

type monasteryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

type guideResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Languages []string `json:"languages"`
	Price     *float64 `json:"price"`
	Rating    float64  `json:"rating,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	PhotoURL  string   `json:"photoURL,omitempty"`
}

type guideListResponse struct {
	Items []guideResponse `json:"items"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Total int             `json:"total"`
}

type signupRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

type signupResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

type chatMessageRequest struct {
	Message string `json:"message"`
}

type chatMessageResponse struct {
	Reply string `json:"reply"`
}

type chatTranscriptMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
	HTML string `json:"html"`
}

type chatSessionResponse struct {
	SessionID string                  `json:"sessionId"`
	State     string                  `json:"state"`
	Typing    bool                    `json:"typing"`
	Focused   bool                    `json:"inputFocused"`
	Messages  []chatTranscriptMessage `json:"messages"`
}

func buildMonasteryResponse(m domain.Monastery) monasteryResponse {
	return monasteryResponse{
		ID:          m.ID,
		Name:        m.Name,
		Location:    m.Location,
		Description: m.Description,
		PhotoURL:    m.PhotoURL,
	}
}

// buildGuideResponse serves the normalized view: languages always a
// list, price null when the stored value is not numeric.
func buildGuideResponse(g domain.Guide) guideResponse {
	var price *float64
	if v := g.PriceValue(); !math.IsNaN(v) {
		price = &v
	}
	return guideResponse{
		ID:        g.ID,
		Name:      g.Name,
		Languages: g.SpokenLanguages(),
		Price:     price,
		Rating:    g.Rating,
		Skills:    g.Skills,
		PhotoURL:  g.PhotoURL,
	}
}

func buildChatSessionResponse(session *domain.ChatSession) chatSessionResponse {
	transcript := session.Transcript()
	messages := make([]chatTranscriptMessage, 0, len(transcript))
	for _, msg := range transcript {
		messages = append(messages, chatTranscriptMessage{
			Role: string(msg.Role),
			Text: msg.Text,
			HTML: msg.HTML,
		})
	}
	return chatSessionResponse{
		SessionID: session.ID,
		State:     string(session.State()),
		Typing:    session.Typing(),
		Focused:   session.InputFocused(),
		Messages:  messages,
	}
}
