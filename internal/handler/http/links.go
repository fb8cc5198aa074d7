package http

import (
	"LinkGate-Backend/internal/auth"
	"LinkGate-Backend/internal/expiry"
	"LinkGate-Backend/internal/repository"
	"LinkGate-Backend/internal/service"
	"LinkGate-Backend/internal/validator"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// AdminTokenHeader заголовок с токеном администратора
const AdminTokenHeader = "X-Admin-Token"

var durationUnits = []string{
	string(expiry.Days),
	string(expiry.Weeks),
	string(expiry.Months),
	string(expiry.Years),
}

// LinksHandler обработчик создания и удаления ссылок
type LinksHandler struct {
	links      *service.LinkService
	pages      *Pages
	log        *zap.Logger
	baseURL    string
	adminToken string
}

// NewLinksHandler создает новый обработчик ссылок
func NewLinksHandler(links *service.LinkService, pages *Pages, log *zap.Logger, baseURL, adminToken string) *LinksHandler {
	return &LinksHandler{
		links:      links,
		pages:      pages,
		log:        log,
		baseURL:    strings.TrimRight(baseURL, "/"),
		adminToken: adminToken,
	}
}

// CreateLinkRequest структура запроса создания ссылки
type CreateLinkRequest struct {
	LongURL       string  `json:"long_url" example:"https://example.com/some/long/path"`
	CustomSlug    string  `json:"custom_slug,omitempty" example:"my-link"`
	DurationType  string  `json:"duration_type" example:"days" enums:"days,weeks,months,years"`
	DurationValue int     `json:"duration_value" example:"7"`
	Password      *string `json:"password,omitempty"`
}

// CreateLinkResponse структура ответа создания ссылки
type CreateLinkResponse struct {
	ShortID   string    `json:"short_id" example:"aZ3kQ9"`
	ShortURL  string    `json:"short_url" example:"http://localhost:8080/aZ3kQ9"`
	ExpiresAt time.Time `json:"expires_at"`
	Protected bool      `json:"protected"`
}

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateLink создает новую короткую ссылку
//
//	@Summary		Create a short link
//	@Description	Create a new shortened URL with a lifetime and an optional password
//	@Tags			Links
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateLinkRequest	true	"Link creation request"
//	@Success		201		{object}	CreateLinkResponse	"Link created successfully"
//	@Failure		400		{object}	ErrorResponse		"Invalid request data"
//	@Failure		409		{object}	ErrorResponse		"Slug already in use"
//	@Failure		503		{object}	ErrorResponse		"Short id space exhausted"
//	@Failure		500		{object}	ErrorResponse		"Storage failure"
//	@Router			/api/shorten [post]
func (h *LinksHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid create link request", zap.Error(err))
		h.writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	result, err := h.links.CreateLink(r.Context(), service.CreateLinkRequest{
		LongURL:       req.LongURL,
		CustomSlug:    req.CustomSlug,
		DurationType:  req.DurationType,
		DurationValue: req.DurationValue,
		Password:      req.Password,
	})
	if err != nil {
		status, message := h.createFailure(err)
		h.writeError(w, message, status)
		return
	}

	h.writeJSON(w, CreateLinkResponse{
		ShortID:   result.ShortID,
		ShortURL:  h.shortURL(r, result.ShortID),
		ExpiresAt: result.ExpiresAt,
		Protected: result.Protected,
	}, http.StatusCreated)
}

// IndexForm показывает форму создания ссылки
func (h *LinksHandler) IndexForm(w http.ResponseWriter, r *http.Request) {
	h.pages.Index(w, IndexPage{
		DurationType:  string(expiry.Days),
		DurationValue: 1,
		Units:         durationUnits,
	}, http.StatusOK)
}

// SubmitForm обрабатывает отправку формы с главной страницы
func (h *LinksHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.log.Debug("invalid form submission", zap.Error(err))
		h.pages.Index(w, IndexPage{
			Message:       "Invalid form data.",
			DurationType:  string(expiry.Days),
			DurationValue: 1,
			Units:         durationUnits,
		}, http.StatusBadRequest)
		return
	}

	page := IndexPage{
		LongURL:      r.PostFormValue("long_url"),
		CustomSlug:   r.PostFormValue("custom_slug"),
		DurationType: r.PostFormValue("duration_type"),
		Units:        durationUnits,
	}

	value, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("duration_value")))
	if err != nil {
		page.Message = "Duration value must be a positive whole number."
		h.pages.Index(w, page, http.StatusBadRequest)
		return
	}
	page.DurationValue = value

	var password *string
	if p := r.PostFormValue("password"); p != "" {
		password = &p
	}

	result, err := h.links.CreateLink(r.Context(), service.CreateLinkRequest{
		LongURL:       page.LongURL,
		CustomSlug:    page.CustomSlug,
		DurationType:  page.DurationType,
		DurationValue: value,
		Password:      password,
	})
	if err != nil {
		status, message := h.createFailure(err)
		page.Message = message
		h.pages.Index(w, page, status)
		return
	}

	h.pages.Index(w, IndexPage{
		ShortURL:      h.shortURL(r, result.ShortID),
		ExpiresAt:     result.ExpiresAt.Format(time.RFC1123),
		DurationType:  string(expiry.Days),
		DurationValue: 1,
		Units:         durationUnits,
	}, http.StatusCreated)
}

// DeleteLink удаляет ссылку по короткому id
//
//	@Summary		Delete a link
//	@Description	Administrative removal of a link before it expires
//	@Tags			Admin
//	@Security		AdminToken
//	@Param			shortId	path	string	true	"Short id"
//	@Success		204		"Link deleted successfully"
//	@Failure		401		{object}	ErrorResponse	"Invalid admin token"
//	@Failure		404		{object}	ErrorResponse	"Link not found"
//	@Router			/api/admin/links/{shortId} [delete]
func (h *LinksHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	// пустой токен в конфиге отключает административный API
	if h.adminToken == "" {
		h.writeError(w, "Not found", http.StatusNotFound)
		return
	}
	provided := r.Header.Get(AdminTokenHeader)
	if subtle.ConstantTimeCompare([]byte(provided), []byte(h.adminToken)) != 1 {
		h.writeError(w, "Invalid admin token", http.StatusUnauthorized)
		return
	}

	shortID := mux.Vars(r)["shortId"]
	err := h.links.DeleteLink(r.Context(), shortID)
	if errors.Is(err, repository.ErrShortIDNotFound) {
		h.writeError(w, "Link not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("failed to delete link", zap.String("short_id", shortID), zap.Error(err))
		h.writeError(w, "Failed to delete link", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// createFailure сопоставляет ошибку создания с HTTP статусом и текстом для пользователя
func (h *LinksHandler) createFailure(err error) (int, string) {
	switch {
	case errors.Is(err, validator.ErrInvalidURL):
		return http.StatusBadRequest, "Invalid URL: scheme and host are required."
	case errors.Is(err, validator.ErrInvalidSlug):
		return http.StatusBadRequest, "Invalid custom slug: use up to 64 letters, digits, '-' or '_'."
	case errors.Is(err, expiry.ErrInvalidUnit):
		return http.StatusBadRequest, "Invalid duration type: use days, weeks, months or years."
	case errors.Is(err, expiry.ErrInvalidDuration):
		return http.StatusBadRequest, "Duration value must be a positive whole number."
	case errors.Is(err, auth.ErrInvalidPassword):
		return http.StatusBadRequest, "Invalid password."
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid request data."
	case errors.Is(err, service.ErrSlugConflict):
		return http.StatusConflict, "Custom slug already in use."
	case errors.Is(err, service.ErrCodeExhausted):
		return http.StatusServiceUnavailable, "Could not allocate a short link, please try again."
	}
	h.log.Error("failed to create link", zap.Error(err))
	return http.StatusInternalServerError, "Failed to create link"
}

// shortURL строит полную короткую ссылку: из конфига или из хоста запроса
func (h *LinksHandler) shortURL(r *http.Request, shortID string) string {
	base := h.baseURL
	if base == "" {
		base = requestBaseURL(r)
	}
	return base + "/" + shortID
}

func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

// Helper methods

func (h *LinksHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	writeJSON(w, h.log, data, statusCode)
}

func (h *LinksHandler) writeError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, h.log, ErrorResponse{Error: message}, statusCode)
}

func writeJSON(w http.ResponseWriter, log *zap.Logger, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("failed to encode response", zap.Error(err))
	}
}
