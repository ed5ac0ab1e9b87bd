package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/account360/account360-api/internal/httputil"
	"github.com/account360/account360-api/internal/logging"
)

// Store is the repository surface the handlers need
type Store interface {
	List(ctx context.Context, filter ListFilter) ([]*Contact, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Contact, error)
	Create(ctx context.Context, c *Contact) (*Contact, error)
	Update(ctx context.Context, id uuid.UUID, c *Contact) (*Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z ]+$`)
	phoneRe = regexp.MustCompile(`^\d{10}$`)
)

// Handler contains HTTP handlers for the contact directory endpoints
type Handler struct {
	store    Store
	validate *validator.Validate
	logger   *logging.Logger
}

func NewHandler(store Store, logger *logging.Logger) *Handler {
	v := validator.New()

	// Letters and spaces only, no digits or punctuation
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return nameRe.MatchString(fl.Field().String())
	})
	// Exactly ten digits; "numeric" is too loose since it also accepts
	// signs and decimal points
	_ = v.RegisterValidation("phonedigits", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	// Value must come from the fixed profession list
	_ = v.RegisterValidation("profession", func(fl validator.FieldLevel) bool {
		return IsValidProfession(fl.Field().String())
	})

	return &Handler{store: store, validate: v, logger: logger}
}

// Request represents a contact create or update body
type Request struct {
	Name       string `json:"name" validate:"required,personname"`
	Email      string `json:"email" validate:"required,email"`
	Contact    string `json:"contact" validate:"required,phonedigits"`
	Profession string `json:"profession" validate:"required,profession"`
}

func (h *Handler) validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "validation failed"
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "required" {
			return "name is required"
		}
		return "name must contain only letters and spaces"
	case "Email":
		if fe.Tag() == "required" {
			return "email is required"
		}
		return "invalid email format"
	case "Contact":
		if fe.Tag() == "required" {
			return "contact number is required"
		}
		return "contact number must be exactly 10 digits"
	case "Profession":
		if fe.Tag() == "required" {
			return "profession is required"
		}
		return "profession must be one of the supported professions"
	}
	return "validation failed"
}

// List returns all contacts, newest first
// @Summary      List contacts
// @Description  Return the contact directory newest first. Supports profession and name/email search filters.
// @Tags         contacts
// @Produce      json
// @Param        profession query string false "Filter by profession"
// @Param        search query string false "Substring match on name or email"
// @Success      200 {array} Contact
// @Failure      500 {object} httputil.ErrorResponse
// @Router       /api/contacts [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	filter := ListFilter{
		Profession: r.URL.Query().Get("profession"),
		Search:     r.URL.Query().Get("search"),
	}

	contacts, err := h.store.List(r.Context(), filter)
	if err != nil {
		logger.Error("failed to list contacts", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to fetch contacts", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, contacts, http.StatusOK)
}

// Get returns a single contact by ID
// @Summary      Get contact
// @Tags         contacts
// @Produce      json
// @Param        id path string true "Contact ID"
// @Success      200 {object} Contact
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/contacts/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "contact not found", httputil.CodeContactNotFound, http.StatusNotFound)
		return
	}

	c, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "contact not found", httputil.CodeContactNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to get contact", "contact_id", id, "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to fetch contact", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, c, http.StatusOK)
}

// Create adds a new contact
// @Summary      Create contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        request body Request true "Contact fields"
// @Success      201 {object} Contact
// @Failure      400 {object} httputil.ErrorResponse
// @Failure      500 {object} httputil.ErrorResponse
// @Router       /api/contacts [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid contact create body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		logger.Warn("contact validation failed", "error", err.Error())
		httputil.RespondErrorWithCode(w, h.validationMessage(err), httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	created, err := h.store.Create(r.Context(), &Contact{
		Name:       req.Name,
		Email:      req.Email,
		Contact:    req.Contact,
		Profession: req.Profession,
	})
	if err != nil {
		logger.Error("failed to create contact", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to create contact", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("contact created", "contact_id", created.ID)

	httputil.RespondJSON(w, created, http.StatusCreated)
}

// Update replaces a contact's fields
// @Summary      Update contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id path string true "Contact ID"
// @Param        request body Request true "Contact fields"
// @Success      200 {object} Contact
// @Failure      400 {object} httputil.ErrorResponse
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/contacts/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "contact not found", httputil.CodeContactNotFound, http.StatusNotFound)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid contact update body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	// Validate before touching storage so a bad payload never half-updates
	if err := h.validate.Struct(req); err != nil {
		logger.Warn("contact validation failed", "error", err.Error())
		httputil.RespondErrorWithCode(w, h.validationMessage(err), httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	updated, err := h.store.Update(r.Context(), id, &Contact{
		Name:       req.Name,
		Email:      req.Email,
		Contact:    req.Contact,
		Profession: req.Profession,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "contact not found", httputil.CodeContactNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to update contact", "contact_id", id, "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to update contact", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("contact updated", "contact_id", id)

	httputil.RespondJSON(w, updated, http.StatusOK)
}

// Delete removes a contact
// @Summary      Delete contact
// @Tags         contacts
// @Produce      json
// @Param        id path string true "Contact ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/contacts/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "contact not found", httputil.CodeContactNotFound, http.StatusNotFound)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "contact not found", httputil.CodeContactNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to delete contact", "contact_id", id, "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to delete contact", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("contact deleted", "contact_id", id)

	httputil.RespondJSON(w, map[string]string{
		"message": "Contact deleted successfully.",
	}, http.StatusOK)
}
