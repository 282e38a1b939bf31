package public

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	publicapp "github.com/norbulab/sikkim-trails-services/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger             *log.Logger
	monasteries        publicapp.MonasteryRepository
	liveMonasteries    publicapp.LiveCollection
	guides             publicapp.GuideMatchService
	signup             publicapp.SignupService
	chat               *publicapp.ChatService
	weather            publicapp.WeatherProvider
	weatherDefaultCity string
	validate           *validator.Validate
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger             *log.Logger
	Monasteries        publicapp.MonasteryRepository
	LiveMonasteries    publicapp.LiveCollection
	Guides             publicapp.GuideMatchService
	Signup             publicapp.SignupService
	Chat               *publicapp.ChatService
	Weather            publicapp.WeatherProvider
	WeatherDefaultCity string
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:             cfg.Logger,
		monasteries:        cfg.Monasteries,
		liveMonasteries:    cfg.LiveMonasteries,
		guides:             cfg.Guides,
		signup:             cfg.Signup,
		chat:               cfg.Chat,
		weather:            cfg.Weather,
		weatherDefaultCity: cfg.WeatherDefaultCity,
		validate:           validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/monasteries", h.monasteryListHandler())
	r.Get("/monasteries/live", h.monasteryLiveHandler())
	r.Get("/guides", h.guideListHandler())
	r.Get("/guides/match", h.guideMatchHandler())
	r.Post("/signup", h.signupHandler())
	r.Get("/weather", h.weatherHandler())
	r.Post("/chat/messages", h.chatMessageHandler())
	r.Post("/chat/sessions", h.chatSessionCreateHandler())
	r.Get("/chat/sessions/{id}", h.chatSessionHandler())
	r.Delete("/chat/sessions/{id}", h.chatSessionDeleteHandler())
	r.Post("/chat/sessions/{id}/messages", h.chatSessionMessageHandler())
	r.Post("/chat/sessions/{id}/open", h.chatSessionOpenHandler())
	r.Post("/chat/sessions/{id}/close", h.chatSessionCloseHandler())
	r.With(authMiddleware).Get("/auth/verify", h.authVerifyHandler())
}
