package service

import (
	"LinkGate-Backend/internal/auth"
	"LinkGate-Backend/internal/config"
	"LinkGate-Backend/internal/domain"
	"LinkGate-Backend/internal/expiry"
	"LinkGate-Backend/internal/repository"
	"LinkGate-Backend/internal/validator"
	"LinkGate-Backend/pkg/random"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxRetries = 5

var (
	// ErrInvalidInput оборачивает все ошибки валидации; конкретная причина доступна через errors.Is
	ErrInvalidInput  = errors.New("invalid input")
	ErrSlugConflict  = errors.New("slug already in use")
	ErrCodeExhausted = errors.New("could not allocate a unique short id, try again")
)

// CodeGenerator выдает случайные короткие коды заданной длины
type CodeGenerator interface {
	Generate(length int) (string, error)
}

// RandomGenerator генерирует коды через pkg/random
type RandomGenerator struct{}

func (RandomGenerator) Generate(length int) (string, error) {
	return random.NewRandomString(length)
}

// CreateLinkRequest запрос на создание ссылки, уже разобранный на границе
type CreateLinkRequest struct {
	LongURL       string
	CustomSlug    string
	DurationType  string
	DurationValue int
	// Password пустой или nil - ссылка без пароля
	Password *string
}

// CreateLinkResult результат создания
type CreateLinkResult struct {
	ShortID   string
	ExpiresAt time.Time
	Protected bool
}

// Outcome исход разрешения короткой ссылки
type Outcome int

const (
	OutcomeRedirect Outcome = iota
	OutcomePasswordChallenge
	OutcomeExpired
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRedirect:
		return "redirect"
	case OutcomePasswordChallenge:
		return "password_challenge"
	case OutcomeExpired:
		return "expired"
	case OutcomeNotFound:
		return "not_found"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// ResolveRequest запрос на переход по короткой ссылке
type ResolveRequest struct {
	ShortID string
	// Password передан, только если посетитель отправил форму пароля
	Password *string
	// Grant - токен доступа из сессии посетителя
	Grant string
}

// Resolution результат разрешения ссылки
type Resolution struct {
	Outcome Outcome
	LongURL string
	// Denied - пароль был отправлен и не подошел (AccessDenied)
	Denied bool
	// Grant - новый токен доступа; слой HTTP сохраняет его в сессии
	Grant string
}

// LinkService управляет жизненным циклом коротких ссылок
type LinkService struct {
	storage   repository.Storage
	gate      *auth.Gate
	passwords *auth.PasswordService
	generator CodeGenerator
	clock     domain.Clock
	config    *config.URLShortener
	log       *zap.Logger
	// reserved - пути, занятые самим сервисом; такие id никогда не дойдут до редиректа
	reserved map[string]struct{}
}

func NewLinkService(
	storage repository.Storage,
	gate *auth.Gate,
	passwords *auth.PasswordService,
	generator CodeGenerator,
	clock domain.Clock,
	cfg *config.URLShortener,
	log *zap.Logger,
) *LinkService {
	return &LinkService{
		storage:   storage,
		gate:      gate,
		passwords: passwords,
		generator: generator,
		clock:     clock,
		config:    cfg,
		log:       log,
		reserved:  make(map[string]struct{}),
	}
}

// ReserveSlugs запрещает выдавать перечисленные id. Вызывается при сборке сервера, до приема запросов.
func (s *LinkService) ReserveSlugs(slugs ...string) {
	for _, slug := range slugs {
		s.reserved[slug] = struct{}{}
	}
}

func (s *LinkService) isReserved(shortID string) bool {
	_, ok := s.reserved[shortID]
	return ok
}

// CreateLink валидирует запрос и сохраняет новую ссылку.
// Все проверки выполняются до любой записи в хранилище.
func (s *LinkService) CreateLink(ctx context.Context, req CreateLinkRequest) (*CreateLinkResult, error) {
	longURL := strings.TrimSpace(req.LongURL)
	if err := validator.ValidateURL(longURL); err != nil {
		return nil, invalid(err)
	}

	slug := strings.TrimSpace(req.CustomSlug)
	if slug != "" {
		if err := validator.ValidateSlug(slug); err != nil {
			return nil, invalid(err)
		}
	}

	unit, err := expiry.ParseUnit(req.DurationType)
	if err != nil {
		return nil, invalid(err)
	}

	now := s.clock.Now()
	expiresAt, err := expiry.ComputeExpiry(now, unit, req.DurationValue)
	if err != nil {
		return nil, invalid(err)
	}

	link := &domain.Link{
		LongURL:   longURL,
		ExpiresAt: expiresAt,
	}

	if req.Password != nil && *req.Password != "" {
		if err := auth.IsValidPassword(*req.Password); err != nil {
			return nil, invalid(err)
		}
		hash, err := s.passwords.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		link.PasswordHash = &hash
	}

	if slug != "" {
		err = s.insertCustom(ctx, link, slug)
	} else {
		err = s.insertGenerated(ctx, link)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("link created",
		zap.String("short_id", link.ShortID),
		zap.Bool("custom", slug != ""),
		zap.Bool("protected", link.HasPassword()),
		zap.Time("expires_at", link.ExpiresAt))

	return &CreateLinkResult{
		ShortID:   link.ShortID,
		ExpiresAt: link.ExpiresAt,
		Protected: link.HasPassword(),
	}, nil
}

// insertCustom - конфликт для пользовательского slug окончательный, без повторов
func (s *LinkService) insertCustom(ctx context.Context, link *domain.Link, slug string) error {
	if s.isReserved(slug) {
		return ErrSlugConflict
	}

	link.ShortID = slug
	err := s.storage.Insert(ctx, link)
	if errors.Is(err, repository.ErrShortIDExists) {
		return ErrSlugConflict
	}
	if err != nil {
		return fmt.Errorf("failed to save link: %w", err)
	}
	return nil
}

// insertGenerated пробует до maxRetries свежих кодов при коллизиях
func (s *LinkService) insertGenerated(ctx context.Context, link *domain.Link) error {
	for attempt := 1; attempt <= maxRetries; attempt++ {
		code, err := s.generator.Generate(s.config.AliasLength)
		if err != nil {
			return fmt.Errorf("failed to generate short id: %w", err)
		}

		if s.isReserved(code) {
			continue
		}

		link.ShortID = code
		err = s.storage.Insert(ctx, link)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrShortIDExists) {
			return fmt.Errorf("failed to save link: %w", err)
		}

		s.log.Debug("generated short id collided, retrying",
			zap.String("short_id", code),
			zap.Int("attempt", attempt))
	}

	s.log.Warn("short id space exhausted", zap.Int("attempts", maxRetries), zap.Int("length", s.config.AliasLength))
	return ErrCodeExhausted
}

// ResolveLink решает, что показать посетителю короткой ссылки.
// Неизвестный и просроченный id - не ошибки, а исходы; ошибка означает сбой хранилища.
func (s *LinkService) ResolveLink(ctx context.Context, req ResolveRequest) (*Resolution, error) {
	if !validator.IsValidSlug(req.ShortID) {
		return &Resolution{Outcome: OutcomeNotFound}, nil
	}

	link, err := s.storage.Lookup(ctx, req.ShortID)
	if errors.Is(err, repository.ErrShortIDNotFound) {
		return &Resolution{Outcome: OutcomeNotFound}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lookup link: %w", err)
	}

	if link.IsExpired(s.clock.Now()) {
		return &Resolution{Outcome: OutcomeExpired}, nil
	}

	decision, err := s.gate.Check(link, auth.Attempt{Password: req.Password, Grant: req.Grant})
	if err != nil {
		return nil, err
	}

	switch decision.State {
	case auth.NoPassword, auth.Verified:
		return &Resolution{Outcome: OutcomeRedirect, LongURL: link.LongURL, Grant: decision.Grant}, nil
	case auth.Denied:
		s.log.Debug("wrong password for link", zap.String("short_id", link.ShortID))
		return &Resolution{Outcome: OutcomePasswordChallenge, Denied: true}, nil
	default:
		return &Resolution{Outcome: OutcomePasswordChallenge}, nil
	}
}

// DeleteLink удаляет ссылку (административная операция)
func (s *LinkService) DeleteLink(ctx context.Context, shortID string) error {
	if err := s.storage.Delete(ctx, shortID); err != nil {
		return err
	}
	s.log.Info("link deleted by admin", zap.String("short_id", shortID))
	return nil
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
