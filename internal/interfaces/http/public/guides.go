package public

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/norbulab/sikkim-trails-services/api/internal/interfaces/http/common"
	"github.com/norbulab/sikkim-trails-services/api/internal/public/domain"
)

func (h *Handler) guideListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		query := r.URL.Query()
		page, _ := common.ParsePositiveInt(query.Get("page"), 1)
		limit, _ := common.ParsePositiveInt(query.Get("limit"), 10)

		guides, err := h.guides.List(ctx)
		if err != nil {
			h.logger.Printf("guide list fetch failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to load guides")
			return
		}

		total := len(guides)
		start := (page - 1) * limit
		if start >= total {
			start = total
		}
		end := start + limit
		if end > total {
			end = total
		}

		items := make([]guideResponse, 0, end-start)
		for _, guide := range guides[start:end] {
			items = append(items, buildGuideResponse(guide))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, guideListResponse{
			Items: items,
			Page:  page,
			Limit: limit,
			Total: total,
		})
	}
}

// guideMatchHandler filters the pool by language and budget. A pool
// fetch failure is logged but answered with an empty list: the visitor
// sees "no matches" either way, and the widget has no error state.
func (h *Handler) guideMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		query := r.URL.Query()
		language := strings.TrimSpace(query.Get("language"))
		if language == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "language is required")
			return
		}
		budget, ok := common.ParseFloat(query.Get("budget"), 0)
		if !ok {
			common.WriteError(h.logger, w, http.StatusBadRequest, "budget must be a number")
			return
		}

		pref := domain.Preference{Language: language, Budget: budget}
		matched, err := h.guides.Match(ctx, pref)
		if err != nil {
			h.logger.Printf("guide match failed language=%q budget=%v err=%v", language, budget, err)
			matched = nil
		}

		items := make([]guideResponse, 0, len(matched))
		for _, guide := range matched {
			items = append(items, buildGuideResponse(guide))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}
