package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	adminapp "github.com/norbulab/sikkim-trails-services/api/internal/admin/application"
	mongodoc "github.com/norbulab/sikkim-trails-services/api/internal/infrastructure/mongo"
	"github.com/norbulab/sikkim-trails-services/api/internal/interfaces/http/common"
)

func (h *Handler) guideListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		guides, err := h.guideService.List(ctx)
		if err != nil {
			h.logger.Printf("admin guide list failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to load guides")
			return
		}

		items := make([]guideResponse, 0, len(guides))
		for _, g := range guides {
			items = append(items, buildGuideResponse(g))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *Handler) guideDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.objectIDParam(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		guide, err := h.guideService.Detail(ctx, id)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				common.WriteError(h.logger, w, http.StatusNotFound, "guide not found")
				return
			}
			h.logger.Printf("admin guide detail failed id=%q err=%v", id, err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to load the guide")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildGuideResponse(*guide))
	}
}

func (h *Handler) guideCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req guideRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		guide, err := h.guideService.Create(ctx, adminapp.UpsertGuideCommand{
			Name:      req.Name,
			Languages: req.Languages,
			Price:     req.Price,
			Rating:    req.Rating,
			Skills:    req.Skills,
			PhotoURL:  req.PhotoURL,
		})
		if err != nil {
			if errors.Is(err, mongodoc.ErrDuplicateEntry) {
				common.WriteError(h.logger, w, http.StatusConflict, "a guide with this name already exists")
				return
			}
			h.logger.Printf("admin guide create failed: %v", err)
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, buildGuideResponse(*guide))
	}
}

func (h *Handler) guideUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.objectIDParam(w, r)
		if !ok {
			return
		}

		var req guideRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		guide, err := h.guideService.Update(ctx, id, adminapp.UpsertGuideCommand{
			Name:      req.Name,
			Languages: req.Languages,
			Price:     req.Price,
			Rating:    req.Rating,
			Skills:    req.Skills,
			PhotoURL:  req.PhotoURL,
		})
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				common.WriteError(h.logger, w, http.StatusNotFound, "guide not found")
				return
			}
			h.logger.Printf("admin guide update failed id=%q err=%v", id, err)
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildGuideResponse(*guide))
	}
}

func (h *Handler) guideDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.objectIDParam(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := h.guideService.Delete(ctx, id); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				common.WriteError(h.logger, w, http.StatusNotFound, "guide not found")
				return
			}
			h.logger.Printf("admin guide delete failed id=%q err=%v", id, err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to delete the guide")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
