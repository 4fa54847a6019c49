package services

import "goaccounts/internal/accounts/domain/entities"

// StatusSuccess - маркер успешного ответа.
const StatusSuccess = "success"

// Claims - единственные поля, встраиваемые в выданный токен.
type Claims struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ClaimsFor собирает claims учетной записи.
func ClaimsFor(account *entities.Account) Claims {
	return Claims{
		ID:    account.ID,
		Name:  account.Name,
		Email: account.Email,
	}
}

// Session - ответ успешной регистрации или входа.
type Session struct {
	ID     string          `json:"id"`
	Token  string          `json:"token"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Avatar entities.Avatar `json:"avatar"`
	Status string          `json:"status"`
}

// NewSession собирает ответ целиком, частично заполненных ответов не бывает.
func NewSession(account *entities.Account, token string) *Session {
	return &Session{
		ID:     account.ID,
		Token:  token,
		Name:   account.Name,
		Email:  account.Email,
		Avatar: account.Avatar,
		Status: StatusSuccess,
	}
}
