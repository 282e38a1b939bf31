package public

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/norbulab/sikkim-trails-services/api/internal/interfaces/http/common"
	publicapp "github.com/norbulab/sikkim-trails-services/api/internal/public/application"
	"github.com/norbulab/sikkim-trails-services/api/internal/public/domain"
)

// chatMessageHandler is the stateless relay: one message in, one reply
// out, no transcript kept.
func (h *Handler) chatMessageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		session := domain.NewChatSession("", "")
		reply, err := h.chat.Send(r.Context(), session, req.Message)
		if err != nil {
			h.writeChatError(w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, chatMessageResponse{Reply: reply})
	}
}

func (h *Handler) chatSessionCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		session := h.chat.NewSession()
		common.WriteJSON(h.logger, w, http.StatusCreated, buildChatSessionResponse(session))
	}
}

func (h *Handler) chatSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := h.sessionFromRequest(w, r)
		if !ok {
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildChatSessionResponse(session))
	}
}

func (h *Handler) chatSessionOpenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := h.sessionFromRequest(w, r)
		if !ok {
			return
		}
		session.Open()
		common.WriteJSON(h.logger, w, http.StatusOK, buildChatSessionResponse(session))
	}
}

func (h *Handler) chatSessionCloseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := h.sessionFromRequest(w, r)
		if !ok {
			return
		}
		session.Close()
		common.WriteJSON(h.logger, w, http.StatusOK, buildChatSessionResponse(session))
	}
}

// chatSessionMessageHandler runs one exchange inside a session. The
// transcript in the response already contains the user message and
// either the reply or the apologetic fallback, so clients render it
// verbatim even when the relay failed.
func (h *Handler) chatSessionMessageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := h.sessionFromRequest(w, r)
		if !ok {
			return
		}

		var req chatMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if _, err := h.chat.Send(r.Context(), session, req.Message); err != nil {
			if errors.Is(err, publicapp.ErrEmptyMessage) {
				common.WriteError(h.logger, w, http.StatusBadRequest, "message is required")
				return
			}
			h.logger.Printf("chat relay failed session=%s err=%v", session.ID, err)
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildChatSessionResponse(session))
	}
}

// chatSessionDeleteHandler tears the session down; the widget calls it
// when the page goes away so the transcript is not retained server-side.
func (h *Handler) chatSessionDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "session id is required")
			return
		}
		if err := h.chat.DeleteSession(id); err != nil {
			common.WriteError(h.logger, w, http.StatusNotFound, "chat session not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) sessionFromRequest(w http.ResponseWriter, r *http.Request) (*domain.ChatSession, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		common.WriteError(h.logger, w, http.StatusBadRequest, "session id is required")
		return nil, false
	}
	session, err := h.chat.Session(id)
	if err != nil {
		common.WriteError(h.logger, w, http.StatusNotFound, "chat session not found")
		return nil, false
	}
	return session, true
}

func (h *Handler) writeChatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, publicapp.ErrEmptyMessage):
		common.WriteError(h.logger, w, http.StatusBadRequest, "message is required")
	default:
		var timeout *domain.TimeoutError
		if errors.As(err, &timeout) {
			common.WriteError(h.logger, w, http.StatusGatewayTimeout, err.Error())
			return
		}
		h.logger.Printf("chat relay failed: %v", err)
		common.WriteError(h.logger, w, http.StatusBadGateway, err.Error())
	}
}
