package http

import (
	"LinkGate-Backend/internal/service"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// GrantCookieName cookie с токеном доступа к защищенной ссылке
const GrantCookieName = "link_access"

// RedirectHandler обработчик переходов по коротким ссылкам
type RedirectHandler struct {
	links *service.LinkService
	pages *Pages
	log   *zap.Logger
}

// NewRedirectHandler создает новый обработчик редиректов
func NewRedirectHandler(links *service.LinkService, pages *Pages, log *zap.Logger) *RedirectHandler {
	return &RedirectHandler{
		links: links,
		pages: pages,
		log:   log,
	}
}

// HandleRedirect обрабатывает переход по короткому id
//
//	@Summary		Follow a short link
//	@Description	Redirects to the long URL, or renders the password prompt, expired or not-found page
//	@Tags			Redirect
//	@Produce		html
//	@Param			shortId	path	string	true	"Short id"
//	@Success		200		"Password prompt"
//	@Success		302		"Redirect to the long URL"
//	@Failure		404		"Link not found"
//	@Failure		410		"Link expired"
//	@Router			/{shortId} [get]
func (h *RedirectHandler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, nil)
}

// HandlePassword принимает пароль к защищенной ссылке
//
//	@Summary		Unlock a protected link
//	@Description	Verifies the password; on success stores an access grant in a session cookie and redirects
//	@Tags			Redirect
//	@Accept			x-www-form-urlencoded
//	@Produce		html
//	@Param			shortId		path		string	true	"Short id"
//	@Param			password	formData	string	true	"Link password"
//	@Success		302			"Redirect to the long URL"
//	@Failure		401			"Incorrect password"
//	@Failure		404			"Link not found"
//	@Failure		410			"Link expired"
//	@Router			/{shortId} [post]
func (h *RedirectHandler) HandlePassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	password := r.PostFormValue("password")
	h.resolve(w, r, &password)
}

func (h *RedirectHandler) resolve(w http.ResponseWriter, r *http.Request, password *string) {
	shortID := mux.Vars(r)["shortId"]

	req := service.ResolveRequest{ShortID: shortID, Password: password}
	if cookie, err := r.Cookie(GrantCookieName); err == nil {
		req.Grant = cookie.Value
	}

	res, err := h.links.ResolveLink(r.Context(), req)
	if err != nil {
		h.log.Error("failed to resolve link", zap.String("short_id", shortID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	switch res.Outcome {
	case service.OutcomeRedirect:
		if res.Grant != "" {
			http.SetCookie(w, grantCookie(r, shortID, res.Grant))
		}
		h.log.Debug("redirecting", zap.String("short_id", shortID))
		http.Redirect(w, r, res.LongURL, http.StatusFound)
	case service.OutcomePasswordChallenge:
		if res.Denied {
			h.pages.PasswordPrompt(w, shortID, "Incorrect password.", http.StatusUnauthorized)
			return
		}
		h.pages.PasswordPrompt(w, shortID, "", http.StatusOK)
	case service.OutcomeExpired:
		h.pages.Expired(w)
	default:
		h.pages.NotFound(w)
	}
}

// grantCookie - сессионная cookie (без Max-Age), видимая только на пути этой ссылки
func grantCookie(r *http.Request, shortID, grant string) *http.Cookie {
	return &http.Cookie{
		Name:     GrantCookieName,
		Value:    grant,
		Path:     "/" + shortID,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
}
