package http

import (
	"net/http"

	"github.com/ingib/site-auth/internal/app"
	"github.com/ingib/site-auth/internal/logger"
	"github.com/ingib/site-auth/internal/utils"
	"github.com/ingib/site-auth/models"
)

const sessionCookieName = "session_id"

// sessionResponse is the wire shape of the cookies-session endpoint.
type sessionResponse struct {
	User         map[string]any `json:"user"`
	Message      string         `json:"message"`
	NewSessionID string         `json:"new_session_id"`
}

// cookiesSession mints a new anonymous session when no session_id
// cookie is present, or refreshes the existing one. The key travels
// back in an httponly cookie either way.
func (h *Handler) cookiesSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	clientIP, userAgent := utils.ClientInfo(r)

	var sessionKey string
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		sessionKey = cookie.Value
	}

	snapshot, err := h.services.SessionService.CreateOrTouch(ctx, sessionKey, clientIP, userAgent)
	if err != nil {
		log.Err(err).Msg("cookies session handling failed")
		http.Error(w, app.MsgSessionError, statusFromError(err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    snapshot.SessionKey,
		Path:     "/",
		HttpOnly: true,
	})

	utils.WriteJSON(w, sessionResponse{
		User:         snapshot.Payload,
		Message:      sessionMessage(snapshot),
		NewSessionID: snapshot.SessionKey,
	}, http.StatusOK)
}

func sessionMessage(snapshot models.SessionSnapshot) string {
	if snapshot.Created {
		return "Session Created"
	}
	return "Session Updated"
}
