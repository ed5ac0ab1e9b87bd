package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/account360/account360-api/internal/logging"
)

const oauthStateCookie = "oauth_state"

// GoogleHandler implements the Google OAuth login flow. The callback never
// returns JSON: every outcome is a redirect back to the frontend so the
// browser flow stays unbroken.
type GoogleHandler struct {
	service     *Service
	oauthConfig *oauth2.Config
	logger      *logging.Logger
	frontendURL string
}

func NewGoogleHandler(service *Service, clientID, clientSecret, redirectURL string, logger *logging.Logger, frontendURL string) *GoogleHandler {
	return &GoogleHandler{
		service: service,
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		logger:      logger,
		frontendURL: frontendURL,
	}
}

// googleUserInfo is the subset of the userinfo response we read
type googleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleAuth starts the OAuth flow by redirecting to Google's consent screen
// @Summary      Start Google OAuth
// @Description  Redirect the browser to Google's consent screen with a CSRF state cookie.
// @Tags         auth
// @Success      307 {string} string "Redirect to Google"
// @Router       /api/auth/google [get]
func (h *GoogleHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	state, err := generateOAuthState()
	if err != nil {
		logging.GetLoggerFromContext(r.Context()).Error("failed to generate oauth state", "error", err.Error())
		h.redirectWithError(w, r)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.oauthConfig.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback completes the OAuth flow
// @Summary      Google OAuth callback
// @Description  Exchange the authorization code, look up or create the account, and redirect to the frontend continuation page.
// @Tags         auth
// @Success      307 {string} string "Redirect to frontend"
// @Router       /api/auth/google/callback [get]
func (h *GoogleHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		logger.Warn("google callback rejected: state mismatch")
		h.redirectWithError(w, r)
		return
	}

	// Clear the state cookie, it is single use
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		logger.Warn("google callback rejected: missing code")
		h.redirectWithError(w, r)
		return
	}

	token, err := h.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		logger.Error("google code exchange failed", "error", err.Error())
		h.redirectWithError(w, r)
		return
	}

	info, err := h.fetchUserInfo(r, token)
	if err != nil {
		logger.Error("failed to fetch google user info", "error", err.Error())
		h.redirectWithError(w, r)
		return
	}

	result, err := h.service.GoogleLogin(r.Context(), GoogleProfile{
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	})
	if err != nil {
		logger.Error("google login failed", "email", info.Email, "error", err.Error())
		h.redirectWithError(w, r)
		return
	}

	if !result.Verified {
		logger.Info("google login pending verification", "email", result.User.Email)
		http.Redirect(w, r, h.frontendURL+"/login?verifyFirst=true", http.StatusTemporaryRedirect)
		return
	}

	logger.Info("google login successful", "user_id", result.User.ID)

	continueURL := fmt.Sprintf("%s/google-continue?token=%s&name=%s&email=%s&profilePic=%s",
		h.frontendURL,
		url.QueryEscape(result.Token),
		url.QueryEscape(result.User.Name),
		url.QueryEscape(result.User.Email),
		url.QueryEscape(result.User.ProfilePic),
	)
	http.Redirect(w, r, continueURL, http.StatusTemporaryRedirect)
}

func (h *GoogleHandler) fetchUserInfo(r *http.Request, token *oauth2.Token) (*googleUserInfo, error) {
	client := h.oauthConfig.Client(r.Context(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request returned status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("userinfo response missing email")
	}

	return &info, nil
}

func (h *GoogleHandler) redirectWithError(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.frontendURL+"/login?error=GoogleAuthFailed", http.StatusTemporaryRedirect)
}

func generateOAuthState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
