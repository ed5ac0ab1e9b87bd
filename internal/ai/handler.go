package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/account360/account360-api/internal/contact"
	"github.com/account360/account360-api/internal/httputil"
	"github.com/account360/account360-api/internal/logging"
)

// ContactLister supplies the directory snapshot fed into the prompt
type ContactLister interface {
	List(ctx context.Context, filter contact.ListFilter) ([]*contact.Contact, error)
}

// Handler proxies contact questions to the chat completions API
type Handler struct {
	client   *Client
	contacts ContactLister
	logger   *logging.Logger
}

func NewHandler(client *Client, contacts ContactLister, logger *logging.Logger) *Handler {
	return &Handler{client: client, contacts: contacts, logger: logger}
}

// AskRequest represents the question body
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse carries the model's answer
type AskResponse struct {
	Answer string `json:"answer"`
}

// Ask answers a question about the contact directory
// @Summary      Ask about contacts
// @Description  Answer a natural-language question about the contact directory using the configured chat model.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request body AskRequest true "Question"
// @Success      200 {object} AskResponse
// @Failure      400 {object} httputil.ErrorResponse
// @Failure      500 {object} httputil.ErrorResponse
// @Router       /api/ai/ask [post]
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid ask request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		httputil.RespondErrorWithCode(w, "question is required", httputil.CodeFieldsRequired, http.StatusBadRequest)
		return
	}

	contacts, err := h.contacts.List(r.Context(), contact.ListFilter{})
	if err != nil {
		logger.Error("failed to load contacts for prompt", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to answer question", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	answer, err := h.client.Ask(r.Context(), req.Question, contacts)
	if err != nil {
		logger.Error("chat completion failed", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to answer question", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, AskResponse{Answer: answer}, http.StatusOK)
}
