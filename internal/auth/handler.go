package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/account360/account360-api/internal/httputil"
	"github.com/account360/account360-api/internal/logging"
	"github.com/account360/account360-api/internal/ratelimit"
	"github.com/account360/account360-api/internal/user"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service     *Service
	rateLimiter *ratelimit.Limiter
	logger      *logging.Logger
	frontendURL string
}

func NewHandler(service *Service, rateLimiter *ratelimit.Limiter, logger *logging.Logger, frontendURL string) *Handler {
	return &Handler{
		service:     service,
		rateLimiter: rateLimiter,
		logger:      logger,
		frontendURL: frontendURL,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Contact    string `json:"contact"`
	ProfilePic string `json:"profilePic,omitempty"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest represents the password reset request
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest represents the password reset confirmation
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// RegisterResponse represents the registration response
type RegisterResponse struct {
	User    user.Profile `json:"user"`
	Message string       `json:"message"`
}

// LoginResponse carries the session token and the sanitized user projection
type LoginResponse struct {
	Token string       `json:"token"`
	User  user.Profile `json:"user"`
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create a new unverified account and send a verification email. Mail failure does not roll the account back.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration fields"
// @Success      201 {object} RegisterResponse
// @Failure      400 {object} ErrorResponse "Missing field, bad email, or domain not allowed"
// @Failure      409 {object} ErrorResponse "Email already exists"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	// Rate limit by IP
	ip := getClientIP(r)
	exceeded, err := h.rateLimiter.CheckIPRateLimitWithPurpose(r.Context(), ip, "register")
	if err != nil {
		logger.Error("failed to check IP rate limit", "error", err.Error())
	} else if exceeded {
		logger.Warn("IP rate limit exceeded for register", "ip", ip)
		respondError(w, "too many requests, please try again later", httputil.CodeTooManyRequests, http.StatusTooManyRequests)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		respondError(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	if err := h.rateLimiter.RecordIPRequestWithPurpose(r.Context(), ip, "register"); err != nil {
		logger.Error("failed to record IP request", "error", err.Error())
	}

	newUser, err := h.service.Register(r.Context(), RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Contact:    req.Contact,
		ProfilePic: req.ProfilePic,
	})
	if err != nil && !errors.Is(err, ErrVerificationEmailFailed) {
		switch {
		case errors.Is(err, user.ErrDuplicateEmail):
			logger.Warn("registration failed: email already exists")
			respondError(w, "user already exists, please log in instead", httputil.CodeEmailAlreadyExists, http.StatusConflict)
		case errors.Is(err, ErrFieldsRequired):
			logger.Warn("registration failed: missing fields")
			respondError(w, err.Error(), httputil.CodeFieldsRequired, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidEmailFormat):
			logger.Warn("registration failed: invalid email")
			respondError(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
		case errors.Is(err, ErrDomainNotAllowed):
			logger.Warn("registration failed: domain not allowed")
			respondError(w, err.Error(), httputil.CodeDomainNotAllowed, http.StatusBadRequest)
		case errors.Is(err, ErrPasswordTooShort):
			logger.Warn("registration failed: password too short")
			respondError(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
		default:
			logger.Error("registration failed: internal error", "error", err.Error())
			respondError(w, "failed to register user", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	message := "Registration successful. Please check your email to verify your account."
	if errors.Is(err, ErrVerificationEmailFailed) {
		// The account exists but the mail bounced; tell the caller so they
		// can contact an administrator.
		message = "User created. Verification email failed to send; contact admin."
	}

	logger.Info("user registered successfully", "user_id", newUser.ID)

	respondJSON(w, RegisterResponse{
		User:    newUser.Profile(),
		Message: message,
	}, http.StatusCreated)
}

// VerifyEmail handles the emailed verification link
// @Summary      Verify email address
// @Description  Verify a user's email using the token from the emailed link, then redirect to the login confirmation page. Verifying twice is harmless.
// @Tags         auth
// @Produce      json
// @Param        token query string true "Verification token"
// @Success      303 {string} string "Redirect to FRONTEND_URL/login?verified=true"
// @Failure      400 {object} ErrorResponse "Invalid or expired token"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/auth/verify-email [get]
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	token := r.URL.Query().Get("token")
	if token == "" {
		logger.Warn("email verification failed: token missing")
		respondError(w, "verification token required", httputil.CodeTokenRequired, http.StatusBadRequest)
		return
	}

	if err := h.service.VerifyEmail(r.Context(), token); err != nil {
		if errors.Is(err, ErrExpiredToken) {
			logger.Warn("email verification failed: token expired")
			respondError(w, "verification link has expired, please request a new one", httputil.CodeTokenExpired, http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrInvalidToken) {
			logger.Warn("email verification failed: invalid token")
			respondError(w, "invalid or expired verification link", httputil.CodeInvalidToken, http.StatusBadRequest)
			return
		}
		logger.Error("email verification failed: internal error", "error", err.Error())
		respondError(w, "failed to verify email", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("email verified successfully")

	http.Redirect(w, r, h.frontendURL+"/login?verified=true", http.StatusSeeOther)
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate with email and password. Blocked until the email is verified.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} LoginResponse
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      401 {object} ErrorResponse "Unverified email or wrong password"
// @Failure      404 {object} ErrorResponse "User not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	// Rate limit by IP
	ip := getClientIP(r)
	exceeded, err := h.rateLimiter.CheckIPRateLimitWithPurpose(r.Context(), ip, "login")
	if err != nil {
		logger.Error("failed to check IP rate limit", "error", err.Error())
	} else if exceeded {
		logger.Warn("IP rate limit exceeded for login", "ip", ip)
		respondError(w, "too many requests, please try again later", httputil.CodeTooManyRequests, http.StatusTooManyRequests)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		respondError(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	if err := h.rateLimiter.RecordIPRequestWithPurpose(r.Context(), ip, "login"); err != nil {
		logger.Error("failed to record IP request", "error", err.Error())
	}

	loggedIn, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			logger.Warn("login failed: user not found")
			respondError(w, "user not found", httputil.CodeUserNotFound, http.StatusNotFound)
		case errors.Is(err, ErrEmailNotVerified):
			logger.Warn("login failed: email not verified")
			respondError(w, "please verify your email before logging in", httputil.CodeEmailNotVerified, http.StatusUnauthorized)
		case errors.Is(err, ErrInvalidCredentials):
			logger.Warn("login failed: invalid credentials")
			respondError(w, "invalid credentials", httputil.CodeInvalidCredentials, http.StatusUnauthorized)
		case errors.Is(err, ErrFieldsRequired):
			logger.Warn("login failed: missing fields")
			respondError(w, err.Error(), httputil.CodeFieldsRequired, http.StatusBadRequest)
		default:
			logger.Error("login failed: internal error", "error", err.Error())
			respondError(w, "failed to login", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("user logged in successfully", "user_id", loggedIn.ID)

	respondJSON(w, LoginResponse{
		Token: token,
		User:  loggedIn.Profile(),
	}, http.StatusOK)
}

// ForgotPassword handles password reset requests
// @Summary      Request password reset
// @Description  Email a reset link to the user. Mail delivery failure is a hard error here since there is no other recovery path.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ForgotPasswordRequest true "Email address"
// @Success      200 {object} map[string]string
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      404 {object} ErrorResponse "User not found"
// @Failure      429 {object} ErrorResponse "Too many requests"
// @Failure      500 {object} ErrorResponse "Mail delivery failed"
// @Router       /api/auth/forgot-password [post]
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid forgot password request body", "error", err.Error())
		respondError(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	// Get client IP for rate limiting
	ip := getClientIP(r)

	// Check IP rate limit (10 req/15 min)
	exceeded, err := h.rateLimiter.CheckIPRateLimit(r.Context(), ip)
	if err != nil {
		logger.Error("failed to check IP rate limit", "error", err.Error())
		// Continue despite error to avoid blocking legitimate requests
	} else if exceeded {
		logger.Warn("IP rate limit exceeded", "ip", ip)
		respondError(w, "too many requests, please try again later", httputil.CodeTooManyRequests, http.StatusTooManyRequests)
		return
	}

	// Check email cooldown (2 min)
	onCooldown, err := h.rateLimiter.CheckEmailCooldown(r.Context(), req.Email)
	if err != nil {
		logger.Error("failed to check email cooldown", "error", err.Error())
		// Continue despite error
	} else if onCooldown {
		logger.Warn("email on cooldown", "email", req.Email)
		respondError(w, "please wait before requesting another reset", httputil.CodeCooldownActive, http.StatusTooManyRequests)
		return
	}

	if err := h.rateLimiter.RecordIPRequest(r.Context(), ip); err != nil {
		logger.Error("failed to record IP request", "error", err.Error())
	}
	if err := h.rateLimiter.SetEmailCooldown(r.Context(), req.Email); err != nil {
		logger.Error("failed to set email cooldown", "error", err.Error())
	}

	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			logger.Warn("forgot password failed: user not found", "email", req.Email)
			respondError(w, "user not found", httputil.CodeUserNotFound, http.StatusNotFound)
		case errors.Is(err, ErrPasswordResetEmailFailed):
			logger.Error("forgot password failed: mail delivery")
			respondError(w, "failed to send reset email", httputil.CodeMailDeliveryFailed, http.StatusInternalServerError)
		default:
			logger.Error("forgot password failed: internal error", "error", err.Error())
			respondError(w, "failed to process request", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, map[string]string{
		"message": "Password reset email sent.",
	}, http.StatusOK)
}

// ResetPassword handles password reset with token
// @Summary      Reset password
// @Description  Store a new password using the reset token from the emailed link. Does not touch the verification flag.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token path string true "Reset token"
// @Param        request body ResetPasswordRequest true "New password"
// @Success      200 {object} map[string]string
// @Failure      400 {object} ErrorResponse "Invalid request or token"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/auth/reset-password/{token} [post]
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	token := chi.URLParam(r, "token")

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid reset password request body", "error", err.Error())
		respondError(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if err := h.service.ResetPassword(r.Context(), token, req.Password); err != nil {
		switch {
		case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrExpiredToken):
			logger.Warn("password reset failed: invalid or expired token")
			respondError(w, "invalid or expired token", httputil.CodeInvalidToken, http.StatusBadRequest)
		case errors.Is(err, ErrFieldsRequired), errors.Is(err, ErrPasswordTooShort):
			logger.Warn("password reset failed: validation error", "error", err.Error())
			respondError(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
		default:
			logger.Error("password reset failed: internal error", "error", err.Error())
			respondError(w, "failed to reset password", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("password reset successfully")

	respondJSON(w, map[string]string{
		"message": "Password reset successfully. You can now login with your new password.",
	}, http.StatusOK)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, data any, statusCode int) {
	httputil.RespondJSON(w, data, statusCode)
}

// respondError sends an error response with a machine-readable code
func respondError(w http.ResponseWriter, message string, code string, statusCode int) {
	httputil.RespondErrorWithCode(w, message, code, statusCode)
}

// getClientIP extracts the client IP address from the request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header first (behind proxy/load balancer)
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	// Check X-Real-IP header
	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fallback to RemoteAddr
	ip := r.RemoteAddr
	// RemoteAddr format is "IP:port", extract just the IP
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
