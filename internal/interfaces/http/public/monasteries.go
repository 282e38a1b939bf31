package public

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/norbulab/sikkim-trails-services/api/internal/interfaces/http/common"
	publicapp "github.com/norbulab/sikkim-trails-services/api/internal/public/application"
)

func (h *Handler) monasteryListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		monasteries, err := h.monasteries.FindAll(ctx)
		if err != nil {
			h.logger.Printf("monastery list fetch failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to load the monastery directory")
			return
		}

		items := make([]monasteryResponse, 0, len(monasteries))
		for _, m := range monasteries {
			items = append(items, buildMonasteryResponse(m))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

// monasteryLiveHandler streams the directory as server-sent events: one
// full snapshot immediately, then one per collection change. The
// subscription is released when the client goes away.
func (h *Handler) monasteryLiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			common.WriteError(h.logger, w, http.StatusInternalServerError, "streaming is not supported")
			return
		}

		// Single-producer latest-wins buffer: a slow client only ever
		// misses intermediate snapshots, never the newest one.
		snapshots := make(chan []publicapp.Record, 1)
		release, err := h.liveMonasteries.Subscribe(r.Context(), func(records []publicapp.Record) {
			select {
			case snapshots <- records:
			default:
				select {
				case <-snapshots:
				default:
				}
				snapshots <- records
			}
		})
		if err != nil {
			h.logger.Printf("live subscription failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to open the live feed")
			return
		}
		defer release()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		for {
			select {
			case <-r.Context().Done():
				return
			case records := <-snapshots:
				payload, err := json.Marshal(records)
				if err != nil {
					h.logger.Printf("snapshot encode failed: %v", err)
					continue
				}
				fmt.Fprintf(w, "data: %s\n\n", payload)
				flusher.Flush()
			}
		}
	}
}
