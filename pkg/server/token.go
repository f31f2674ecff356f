package server

import (
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kekaadrenalin/hookedit/pkg/user"
)

const jwtCookie = "jwt"

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *handler) createToken(w http.ResponseWriter, r *http.Request) {
	username, password, ok := r.BasicAuth()
	if !ok {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form")
			return
		}
		username, password = r.PostFormValue("username"), r.PostFormValue("password")
	}

	token, err := h.config.Authorization.Authorizer.CreateToken(username, password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		log.Errorf("could not create token: %s", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     jwtCookie,
		Value:    token,
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})

	log.Infof("token created for %s", username)

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (h *handler) deleteToken(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     jwtCookie,
		Value:    "",
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	w.WriteHeader(http.StatusNoContent)
}
