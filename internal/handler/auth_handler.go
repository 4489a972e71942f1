package handler

import (
	"crypto/rand"
	"encoding/base64"
	"go-feedback-app/internal/auth"
	"go-feedback-app/internal/data"
	"go-feedback-app/internal/logger"
	"go-feedback-app/internal/middleware"
	"go-feedback-app/internal/service"
	"go-feedback-app/internal/session"
	"io"
	"net/http"
	"time"
)

// AuthHandler holds the dependencies for the authentication handlers. The
// OIDC authenticator is optional; when nil only password login is offered.
type AuthHandler struct {
	accounts     *service.AccountService
	sessions     session.Manager
	auth         *auth.Authenticator
	providerName string
	log          logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts *service.AccountService, sessions session.Manager, a *auth.Authenticator, providerName string, log logger.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions, auth: a, providerName: providerName, log: log}
}

// establishSession rotates the session token and records the signed-in user.
// The role is resolved once at login; a promotion requires a fresh login.
func (h *AuthHandler) establishSession(r *http.Request, user *data.User) error {
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		return err
	}
	role := middleware.RoleMember
	if user.IsAdmin {
		role = middleware.RoleAdmin
	}
	h.sessions.Put(r.Context(), middleware.SessionUserID, user.ID)
	h.sessions.Put(r.Context(), middleware.SessionRole, role)
	return nil
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// register creates a password account and signs it in.
func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req registerRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		return appErr
	}

	user, err := h.accounts.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return appError(err, "Failed to register")
	}

	if err := h.establishSession(r, user); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to establish session", Code: http.StatusInternalServerError}
	}

	h.log.With(map[string]interface{}{"user_id": user.ID, "is_admin": user.IsAdmin}).Info("user registered")

	if err := renderJSON(w, http.StatusCreated, map[string]interface{}{
		"id":       user.ID,
		"is_admin": user.IsAdmin,
	}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// login checks a password and signs the account in.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req loginRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		return appErr
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		return appError(err, "Failed to log in")
	}

	if err := h.establishSession(r, user); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to establish session", Code: http.StatusInternalServerError}
	}

	if err := renderJSON(w, http.StatusOK, map[string]interface{}{
		"id":       user.ID,
		"is_admin": user.IsAdmin,
	}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}

// logout destroys the session.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to log out", Code: http.StatusInternalServerError}
	}
	http.Redirect(w, r, "/feedback", http.StatusFound)
	return nil
}

// handleOIDCLogin redirects the user to the OIDC provider to log in.
// It uses a random 'state' string for CSRF protection.
func (h *AuthHandler) handleOIDCLogin(w http.ResponseWriter, r *http.Request) {
	state, err := randString(16)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	// Store the state in a short-lived cookie to verify on callback.
	http.SetCookie(w, &http.Cookie{
		Name:     "state",
		Value:    state,
		Path:     "/",
		MaxAge:   int(10 * time.Minute / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
	})
	http.Redirect(w, r, h.auth.AuthCodeURL(state), http.StatusFound)
}

// handleOIDCCallback is the redirect URL for the OIDC provider. It handles
// the code exchange, verifies the ID token, and upserts the account.
func (h *AuthHandler) handleOIDCCallback(w http.ResponseWriter, r *http.Request) {
	// Verify the state parameter to prevent CSRF attacks.
	stateCookie, err := r.Cookie("state")
	if err != nil {
		http.Error(w, "state cookie not found", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("state") != stateCookie.Value {
		http.Error(w, "state did not match", http.StatusBadRequest)
		return
	}

	// Exchange the authorization code for an OAuth2 token.
	oauth2Token, err := h.auth.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		http.Error(w, "Failed to exchange token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Extract the ID Token from the OAuth2 token.
	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		http.Error(w, "No id_token field in oauth2 token", http.StatusInternalServerError)
		return
	}

	// Verify the ID Token's signature and claims.
	idToken, err := h.auth.Verify(r.Context(), rawIDToken)
	if err != nil {
		http.Error(w, "Failed to verify ID Token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var claims struct {
		Subject string `json:"sub"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		http.Error(w, "Failed to parse ID Token claims: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if claims.Name == "" {
		claims.Name = claims.Email
	}
	var avatar *string
	if claims.Picture != "" {
		avatar = &claims.Picture
	}

	user, err := h.accounts.ProviderLogin(r.Context(), h.providerName, claims.Subject, claims.Name, claims.Email, avatar)
	if err != nil {
		h.log.Error(err, "provider login failed")
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	if err := h.establishSession(r, user); err != nil {
		http.Error(w, "Failed to establish session", http.StatusInternalServerError)
		return
	}

	// Admins land on the dashboard, everyone else on the board.
	target := "/feedback"
	if user.IsAdmin {
		target = "/admin"
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// randString is a helper function to generate a random string for the 'state' parameter.
func randString(nByte int) (string, error) {
	b := make([]byte, nByte)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
