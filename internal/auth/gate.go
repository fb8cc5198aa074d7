package auth

import (
	"LinkGate-Backend/internal/domain"
	"fmt"
)

// State состояние проверки доступа к ссылке в рамках одного запроса
type State int

const (
	// NoPassword - ссылка не защищена, переход разрешен
	NoPassword State = iota
	// PasswordRequired - нужен пароль, показываем форму
	PasswordRequired
	// Verifying - пароль передан в этом запросе и проверяется
	Verifying
	// Verified - доступ подтвержден (паролем или ранее выданным токеном)
	Verified
	// Denied - пароль неверный, форма показывается повторно с ошибкой
	Denied
)

func (s State) String() string {
	switch s {
	case NoPassword:
		return "no_password"
	case PasswordRequired:
		return "password_required"
	case Verifying:
		return "verifying"
	case Verified:
		return "verified"
	case Denied:
		return "denied"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Allowed сообщает, можно ли выполнить редирект
func (s State) Allowed() bool {
	return s == NoPassword || s == Verified
}

// Attempt данные запроса, относящиеся к доступу
type Attempt struct {
	// Password - пароль, введенный в этом запросе; nil если форма не отправлялась
	Password *string
	// Grant - токен, выданный ранее в этой сессии
	Grant string
}

// Decision результат проверки
type Decision struct {
	State State
	// Grant - новый токен; выдается только при успешном вводе пароля
	Grant string
}

// Gate решает, можно ли перейти по защищенной ссылке
type Gate struct {
	passwords *PasswordService
	tokens    *TokenService
}

// NewGate создает новый Gate
func NewGate(passwords *PasswordService, tokens *TokenService) *Gate {
	return &Gate{
		passwords: passwords,
		tokens:    tokens,
	}
}

// Check проверяет доступ к ссылке. Ссылка не изменяется.
func (g *Gate) Check(link *domain.Link, attempt Attempt) (Decision, error) {
	if !link.HasPassword() {
		return Decision{State: NoPassword}, nil
	}

	if attempt.Grant != "" && g.tokens.ValidateGrant(attempt.Grant, link.ShortID) == nil {
		return Decision{State: Verified}, nil
	}

	if attempt.Password == nil {
		return Decision{State: PasswordRequired}, nil
	}

	return g.verify(link, *attempt.Password)
}

// verify обрабатывает состояние Verifying
func (g *Gate) verify(link *domain.Link, candidate string) (Decision, error) {
	if !g.passwords.VerifyPassword(*link.PasswordHash, candidate) {
		return Decision{State: Denied}, nil
	}

	grant, err := g.tokens.IssueGrant(link.ShortID)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to issue access grant: %w", err)
	}

	return Decision{State: Verified, Grant: grant}, nil
}
