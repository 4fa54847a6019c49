package services

import (
	"errors"
)

// Kind - вид отказа сценария.
type Kind string

// Виды отказов.
const (
	KindValidationFailed     Kind = "ValidationFailed"
	KindAccountAlreadyExists Kind = "AccountAlreadyExists"
	KindRegistrationFailed   Kind = "RegistrationFailed"
	KindInvalidCredentials   Kind = "InvalidCredentials"
	KindAccountNotFound      Kind = "AccountNotFound"
)

// Status - классификация отказа для вызывающей стороны.
type Status int

// Классификации отказов.
const (
	StatusBadRequest Status = iota + 1
	StatusUnauthorized
	StatusNotFound
)

func (s Status) String() string {
	switch s {
	case StatusBadRequest:
		return "BadRequest"
	case StatusUnauthorized:
		return "Unauthorized"
	case StatusNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// Сообщения отказов. Сообщение о неверных учетных данных одинаково
// для неизвестного email и неверного пароля.
const (
	MsgAccountAlreadyExists = "Account already exists"
	MsgRegistrationFailed   = "Registration failed"
	MsgInvalidCredentials   = "Email or password is incorrect"
	MsgAccountNotFound      = "Account not found"
)

// Failure - отказ сценария: вид, классификация, сообщение и сценарий-источник.
type Failure struct {
	Kind    Kind
	Status  Status
	Message string
	Source  string
}

// Эталонные отказы для сравнения через errors.Is.
var (
	ErrValidationFailed     = &Failure{Kind: KindValidationFailed, Status: StatusBadRequest}
	ErrAccountAlreadyExists = &Failure{Kind: KindAccountAlreadyExists, Status: StatusBadRequest}
	ErrRegistrationFailed   = &Failure{Kind: KindRegistrationFailed, Status: StatusBadRequest}
	ErrInvalidCredentials   = &Failure{Kind: KindInvalidCredentials, Status: StatusUnauthorized}
	ErrAccountNotFound      = &Failure{Kind: KindAccountNotFound, Status: StatusNotFound}
)

// NewFailure создает отказ, классификация определяется видом.
func NewFailure(kind Kind, message, source string) *Failure {
	return &Failure{
		Kind:    kind,
		Status:  statusOf(kind),
		Message: message,
		Source:  source,
	}
}

func statusOf(kind Kind) Status {
	switch kind {
	case KindInvalidCredentials:
		return StatusUnauthorized
	case KindAccountNotFound:
		return StatusNotFound
	default:
		return StatusBadRequest
	}
}

func (f *Failure) Error() string {
	if f.Message == "" {
		return string(f.Kind)
	}
	return f.Message
}

// Is сравнивает отказы по виду.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	return ok && t.Kind == f.Kind
}

// AsFailure извлекает Failure из цепочки ошибок.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
