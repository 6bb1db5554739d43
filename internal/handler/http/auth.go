package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ingib/site-auth/internal/app"
	"github.com/ingib/site-auth/internal/logger"
	"github.com/ingib/site-auth/internal/service"
	"github.com/ingib/site-auth/internal/utils"
)

// cookieSessionHeader carries the anonymous session key a registering
// or logging-in visitor wants reconciled with their identity.
const cookieSessionHeader = "Cookie-Session"

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	sessionKey := r.Header.Get(cookieSessionHeader)
	clientIP, userAgent := utils.ClientInfo(r)

	registered, err := h.services.AuthService.Register(ctx, email, password, clientIP, userAgent, sessionKey)
	if err != nil {
		log.Err(err).Msg("registration failed")
		h.writeError(w, err)
		return
	}

	pair, err := h.services.AuthService.Tokens(registered.Email, registered.RoleID)
	if err != nil {
		log.Err(err).Msg("creation of tokens failed")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, pair, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	sessionKey := r.Header.Get(cookieSessionHeader)
	clientIP, userAgent := utils.ClientInfo(r)

	user, err := h.services.AuthService.Login(ctx, email, password, clientIP, userAgent, sessionKey)
	if err != nil {
		log.Err(err).Msg("login failed")
		h.writeError(w, err)
		return
	}

	pair, err := h.services.AuthService.Tokens(user.Email, user.RoleID)
	if err != nil {
		log.Err(err).Msg("creation of tokens failed")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, pair, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		log.Err(err).Msg("missing bearer token")
		http.Error(w, app.MsgInvalidAuthorizationHeader, http.StatusUnauthorized)
		return
	}

	clientIP, userAgent := utils.ClientInfo(r)
	pair, err := h.services.AuthService.Refresh(ctx, token, clientIP, userAgent)
	if err != nil {
		log.Err(err).Msg("token refresh failed")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, pair, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		log.Err(err).Msg("missing bearer token")
		http.Error(w, app.MsgInvalidAuthorizationHeader, http.StatusUnauthorized)
		return
	}

	clientIP, userAgent := utils.ClientInfo(r)
	info, err := h.services.AuthService.CurrentUserData(ctx, token, clientIP, userAgent)
	if err != nil {
		log.Err(err).Msg("account data lookup failed")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, info, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		log.Err(err).Msg("missing bearer token")
		http.Error(w, app.MsgInvalidAuthorizationHeader, http.StatusUnauthorized)
		return
	}

	currentPassword := r.PostFormValue("current_password")
	newPassword := r.PostFormValue("new_password")

	email, err := h.services.AuthService.ChangePassword(ctx, token, currentPassword, newPassword)
	if err != nil {
		log.Err(err).Msg("password change failed")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, map[string]string{"email": email}, http.StatusOK)
}

func (h *Handler) confirmEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		log.Err(err).Msg("missing bearer token")
		http.Error(w, app.MsgInvalidAuthorizationHeader, http.StatusUnauthorized)
		return
	}

	key := chi.URLParam(r, "key")
	clientIP, userAgent := utils.ClientInfo(r)

	err = h.services.AuthService.ConfirmEmail(ctx, token, key, clientIP, userAgent)
	switch {
	case err == nil:
		utils.WriteJSON(w, true, http.StatusOK)
	case errors.Is(err, service.ErrEmailAlreadyConfirmed):
		// Distinct from first confirmation, still a 200.
		utils.WriteJSON(w, false, http.StatusOK)
	default:
		log.Err(err).Msg("email confirmation failed")
		h.writeError(w, err)
	}
}

// writeError maps a service-layer failure to its HTTP status. Internal
// failures get a generic body so storage detail never leaks outward.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	switch {
	case status == http.StatusServiceUnavailable:
		http.Error(w, app.MsgServiceUnavailable, status)
	case status >= http.StatusInternalServerError:
		http.Error(w, app.MsgInternalServerError, status)
	default:
		http.Error(w, err.Error(), status)
	}
}
