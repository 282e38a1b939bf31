package admin

import (
	"log"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/norbulab/sikkim-trails-services/api/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services. Admin
// routes carry the out-of-band directory writes the public surface only
// observes; the server mounts them behind the admin auth middleware.
type Handler struct {
	logger           *log.Logger
	monasteryService adminapp.MonasteryService
	guideService     adminapp.GuideService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger           *log.Logger
	MonasteryService adminapp.MonasteryService
	GuideService     adminapp.GuideService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:           cfg.Logger,
		monasteryService: cfg.MonasteryService,
		guideService:     cfg.GuideService,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/monasteries", h.monasteryListHandler())
	r.Get("/monasteries/{id}", h.monasteryDetailHandler())
	r.Post("/monasteries", h.monasteryCreateHandler())
	r.Patch("/monasteries/{id}", h.monasteryUpdateHandler())
	r.Delete("/monasteries/{id}", h.monasteryDeleteHandler())
	r.Get("/guides", h.guideListHandler())
	r.Get("/guides/{id}", h.guideDetailHandler())
	r.Post("/guides", h.guideCreateHandler())
	r.Patch("/guides/{id}", h.guideUpdateHandler())
	r.Delete("/guides/{id}", h.guideDeleteHandler())
}
