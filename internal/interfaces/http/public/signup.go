package public

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/norbulab/sikkim-trails-services/api/internal/interfaces/http/common"
	publicapp "github.com/norbulab/sikkim-trails-services/api/internal/public/application"
	"github.com/norbulab/sikkim-trails-services/api/internal/public/domain"
)

// signupHandler creates an anonymous identity and stores its profile.
// When the profile write fails the identity already exists; the 502
// tells the client to retry the whole flow rather than assume success.
func (h *Handler) signupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		var req signupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		req.Phone = strings.TrimSpace(req.Phone)
		req.Email = strings.TrimSpace(req.Email)

		if err := h.validate.Struct(req); err != nil {
			var invalid *validator.InvalidValidationError
			if errors.As(err, &invalid) {
				common.WriteError(h.logger, w, http.StatusInternalServerError, "signup validation failed")
				return
			}
			common.WriteError(h.logger, w, http.StatusBadRequest, validationMessage(err))
			return
		}

		result, err := h.signup.Signup(ctx, publicapp.SignupCommand{
			Name:  req.Name,
			Phone: req.Phone,
			Email: req.Email,
		})
		if err != nil {
			var authErr *domain.AuthError
			if errors.As(err, &authErr) {
				h.logger.Printf("anonymous sign-in rejected: %v", err)
				common.WriteError(h.logger, w, http.StatusBadGateway, "could not create an account, please try again")
				return
			}
			var writeErr *domain.StoreWriteError
			if errors.As(err, &writeErr) {
				h.logger.Printf("profile write failed after identity creation: %v", err)
				common.WriteError(h.logger, w, http.StatusBadGateway, "could not save your details, please try again")
				return
			}
			h.logger.Printf("signup failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "signup failed")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, signupResponse{
			ID:    result.ID,
			Token: result.Token,
		})
	}
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "required":
			return strings.ToLower(fe.Field()) + " is required"
		case "email":
			return "email must be a valid address"
		}
		return strings.ToLower(fe.Field()) + " is invalid"
	}
	return "invalid signup request"
}
