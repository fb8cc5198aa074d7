package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageIndex          = "index.html"
	pagePasswordPrompt = "password_prompt.html"
	pageNotFound       = "not_found.html"
	pageExpired        = "expired.html"
)

// Pages рендерит HTML-страницы сервиса
type Pages struct {
	templates map[string]*template.Template
	log       *zap.Logger
}

// NewPages разбирает встроенные шаблоны. Ошибка означает битый шаблон в сборке.
func NewPages(log *zap.Logger) (*Pages, error) {
	layout, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	templates := make(map[string]*template.Template)
	for _, name := range []string{pageIndex, pagePasswordPrompt, pageNotFound, pageExpired} {
		clone, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout: %w", err)
		}
		tmpl, err := clone.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &Pages{templates: templates, log: log}, nil
}

// IndexPage данные формы создания ссылки
type IndexPage struct {
	Title         string
	ShortURL      string
	ExpiresAt     string
	Message       string
	LongURL       string
	CustomSlug    string
	DurationType  string
	DurationValue int
	Units         []string
}

// PasswordPage данные формы ввода пароля
type PasswordPage struct {
	Title   string
	ShortID string
	Error   string
}

type simplePage struct {
	Title string
}

func (p *Pages) Index(w http.ResponseWriter, data IndexPage, status int) {
	data.Title = "Shorten a link"
	p.render(w, pageIndex, data, status)
}

func (p *Pages) PasswordPrompt(w http.ResponseWriter, shortID, errMessage string, status int) {
	p.render(w, pagePasswordPrompt, PasswordPage{Title: "Password required", ShortID: shortID, Error: errMessage}, status)
}

func (p *Pages) NotFound(w http.ResponseWriter) {
	p.render(w, pageNotFound, simplePage{Title: "Not found"}, http.StatusNotFound)
}

func (p *Pages) Expired(w http.ResponseWriter) {
	p.render(w, pageExpired, simplePage{Title: "Expired"}, http.StatusGone)
}

// render сначала пишет в буфер, чтобы ошибка шаблона не оставила полуответ
func (p *Pages) render(w http.ResponseWriter, name string, data any, status int) {
	var buf bytes.Buffer
	if err := p.templates[name].ExecuteTemplate(&buf, name, data); err != nil {
		p.log.Error("failed to render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		p.log.Debug("failed to write page", zap.String("page", name), zap.Error(err))
	}
}
