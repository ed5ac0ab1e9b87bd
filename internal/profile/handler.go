package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/account360/account360-api/internal/auth"
	"github.com/account360/account360-api/internal/httputil"
	"github.com/account360/account360-api/internal/logging"
	"github.com/account360/account360-api/internal/user"
)

// Store is the slice of the user repository the profile endpoints need
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, contact, profilePic string) (*user.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Handler contains HTTP handlers for the authenticated profile endpoints
type Handler struct {
	store  Store
	logger *logging.Logger
}

func NewHandler(store Store, logger *logging.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// UpdateRequest represents the profile update body. Email is immutable, it
// is the account identity and the verification anchor.
type UpdateRequest struct {
	Name       string `json:"name"`
	Contact    string `json:"contact"`
	ProfilePic string `json:"profilePic"`
}

// Get returns the caller's profile
// @Summary      Get profile
// @Description  Return the authenticated user's profile.
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} user.Profile
// @Failure      401 {object} httputil.ErrorResponse
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/profile [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	u, err := h.store.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			logger.Warn("profile fetch failed: user not found", "user_id", userID)
			httputil.RespondErrorWithCode(w, "user not found", httputil.CodeUserNotFound, http.StatusNotFound)
			return
		}
		logger.Error("profile fetch failed", "user_id", userID, "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to fetch profile", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, u.Profile(), http.StatusOK)
}

// Update changes the caller's name, contact, and profile picture
// @Summary      Update profile
// @Description  Update the authenticated user's name, contact number, and profile picture. Email cannot be changed.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateRequest true "Profile fields"
// @Success      200 {object} user.Profile
// @Failure      400 {object} httputil.ErrorResponse
// @Failure      401 {object} httputil.ErrorResponse
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/profile [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid profile update body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.Contact == "" {
		logger.Warn("profile update failed: missing fields", "user_id", userID)
		httputil.RespondErrorWithCode(w, "name and contact are required", httputil.CodeFieldsRequired, http.StatusBadRequest)
		return
	}

	updated, err := h.store.UpdateProfile(r.Context(), userID, req.Name, req.Contact, req.ProfilePic)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			logger.Warn("profile update failed: user not found", "user_id", userID)
			httputil.RespondErrorWithCode(w, "user not found", httputil.CodeUserNotFound, http.StatusNotFound)
			return
		}
		logger.Error("profile update failed", "user_id", userID, "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to update profile", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("profile updated", "user_id", userID)

	httputil.RespondJSON(w, updated.Profile(), http.StatusOK)
}

// Delete removes the caller's account
// @Summary      Delete account
// @Description  Permanently delete the authenticated user's account.
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]string
// @Failure      401 {object} httputil.ErrorResponse
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/profile [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	if err := h.store.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			logger.Warn("account deletion failed: user not found", "user_id", userID)
			httputil.RespondErrorWithCode(w, "user not found", httputil.CodeUserNotFound, http.StatusNotFound)
			return
		}
		logger.Error("account deletion failed", "user_id", userID, "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to delete account", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("account deleted", "user_id", userID)

	httputil.RespondJSON(w, map[string]string{
		"message": "Account deleted successfully.",
	}, http.StatusOK)
}
