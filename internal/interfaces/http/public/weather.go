package public

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/norbulab/sikkim-trails-services/api/internal/interfaces/http/common"
)

// weatherHandler proxies the city query to the weather provider. Every
// call is a fresh upstream fetch; the upstream call deliberately carries
// no deadline, so the handler passes the request context through as-is.
func (h *Handler) weatherHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		city := strings.TrimSpace(r.URL.Query().Get("city"))
		if city == "" {
			city = h.weatherDefaultCity
		}

		report, err := h.weather.CurrentByCity(r.Context(), city)
		if err != nil {
			h.logger.Printf("weather fetch failed city=%q err=%v", city, err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, err.Error())
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		if report.StatusCode < 200 || report.StatusCode >= 300 {
			h.logger.Printf("weather upstream returned %d for city=%q", report.StatusCode, city)
			common.WriteError(h.logger, w, report.StatusCode, fmt.Sprintf("Weather API failed: %s", report.Body))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(report.Body); err != nil {
			h.logger.Printf("weather relay write failed: %v", err)
		}
	}
}
