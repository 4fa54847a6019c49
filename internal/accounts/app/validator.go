package app

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Сообщения валидации учетных данных.
const (
	MsgNameRequired      = "Name is required"
	MsgEmailRequired     = "Email is required"
	MsgEmailInvalid      = "Email format is invalid"
	MsgPasswordRequired  = "Password is required"
	MsgPasswordTooShort  = "Password required min 6 characters"
	violationsSeparator  = ", "
	minPasswordRuneCount = 6
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateRegistration проверяет имя, email и пароль при регистрации.
// Возвращает все нарушения в порядке правил: имя, email, пароль.
func ValidateRegistration(name, email, password string) []string {
	var violations []string
	if name == "" {
		violations = append(violations, MsgNameRequired)
	}
	violations = append(violations, validateEmail(email)...)
	if password == "" {
		violations = append(violations, MsgPasswordRequired)
	}
	if utf8.RuneCountInString(password) < minPasswordRuneCount {
		violations = append(violations, MsgPasswordTooShort)
	}
	return violations
}

// ValidateLogin проверяет email и наличие пароля при входе, без требования к длине.
func ValidateLogin(email, password string) []string {
	violations := validateEmail(email)
	if password == "" {
		violations = append(violations, MsgPasswordRequired)
	}
	return violations
}

func validateEmail(email string) []string {
	var violations []string
	if email == "" {
		violations = append(violations, MsgEmailRequired)
	}
	if !emailPattern.MatchString(email) {
		violations = append(violations, MsgEmailInvalid)
	}
	return violations
}

func joinViolations(violations []string) string {
	return strings.Join(violations, violationsSeparator)
}
