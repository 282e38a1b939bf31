package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	adminapp "github.com/norbulab/sikkim-trails-services/api/internal/admin/application"
	mongodoc "github.com/norbulab/sikkim-trails-services/api/internal/infrastructure/mongo"
	"github.com/norbulab/sikkim-trails-services/api/internal/interfaces/http/common"
)

func (h *Handler) monasteryListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		monasteries, err := h.monasteryService.List(ctx)
		if err != nil {
			h.logger.Printf("admin monastery list failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to load monasteries")
			return
		}

		items := make([]monasteryResponse, 0, len(monasteries))
		for _, m := range monasteries {
			items = append(items, buildMonasteryResponse(m))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *Handler) monasteryDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.objectIDParam(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		monastery, err := h.monasteryService.Detail(ctx, id)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				common.WriteError(h.logger, w, http.StatusNotFound, "monastery not found")
				return
			}
			h.logger.Printf("admin monastery detail failed id=%q err=%v", id, err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to load the monastery")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildMonasteryResponse(*monastery))
	}
}

func (h *Handler) monasteryCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req monasteryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		monastery, err := h.monasteryService.Create(ctx, adminapp.UpsertMonasteryCommand{
			Name:        req.Name,
			Location:    req.Location,
			Description: req.Description,
			PhotoURL:    req.PhotoURL,
		})
		if err != nil {
			if errors.Is(err, mongodoc.ErrDuplicateEntry) {
				common.WriteError(h.logger, w, http.StatusConflict, "a monastery with this name already exists")
				return
			}
			h.logger.Printf("admin monastery create failed: %v", err)
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, buildMonasteryResponse(*monastery))
	}
}

func (h *Handler) monasteryUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.objectIDParam(w, r)
		if !ok {
			return
		}

		var req monasteryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		monastery, err := h.monasteryService.Update(ctx, id, adminapp.UpsertMonasteryCommand{
			Name:        req.Name,
			Location:    req.Location,
			Description: req.Description,
			PhotoURL:    req.PhotoURL,
		})
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				common.WriteError(h.logger, w, http.StatusNotFound, "monastery not found")
				return
			}
			h.logger.Printf("admin monastery update failed id=%q err=%v", id, err)
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildMonasteryResponse(*monastery))
	}
}

func (h *Handler) monasteryDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.objectIDParam(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := h.monasteryService.Delete(ctx, id); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				common.WriteError(h.logger, w, http.StatusNotFound, "monastery not found")
				return
			}
			h.logger.Printf("admin monastery delete failed id=%q err=%v", id, err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to delete the monastery")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// objectIDParam validates the {id} route parameter as a hex ObjectID.
func (h *Handler) objectIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		common.WriteError(h.logger, w, http.StatusBadRequest, "invalid id format")
		return "", false
	}
	return id, true
}
