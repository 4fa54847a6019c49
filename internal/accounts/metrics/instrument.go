package metrics

import (
	"context"
	"time"

	"goaccounts/internal/accounts/domain/entities"
	"goaccounts/internal/accounts/domain/services"
	"goaccounts/internal/accounts/ports/api"
)

type registration struct {
	next    api.RegistrationUseCase
	metrics *Metrics
}

// InstrumentRegistration оборачивает сценарий регистрации учетом метрик.
func InstrumentRegistration(next api.RegistrationUseCase, m *Metrics) api.RegistrationUseCase {
	return &registration{next: next, metrics: m}
}

func (r *registration) Register(
	ctx context.Context,
	name, email, password string,
	avatar entities.Avatar,
) (*services.Session, error) {
	started := time.Now()
	session, err := r.next.Register(ctx, name, email, password, avatar)
	r.metrics.Observe(WorkflowRegister, started, err)
	return session, err
}

type authentication struct {
	next    api.AuthenticationUseCase
	metrics *Metrics
}

// InstrumentAuthentication оборачивает сценарий входа учетом метрик.
func InstrumentAuthentication(next api.AuthenticationUseCase, m *Metrics) api.AuthenticationUseCase {
	return &authentication{next: next, metrics: m}
}

func (a *authentication) Login(ctx context.Context, email, password string) (*services.Session, error) {
	started := time.Now()
	session, err := a.next.Login(ctx, email, password)
	a.metrics.Observe(WorkflowLogin, started, err)
	return session, err
}

type account struct {
	next    api.AccountUseCase
	metrics *Metrics
}

// InstrumentAccount оборачивает сценарий получения профиля учетом метрик.
func InstrumentAccount(next api.AccountUseCase, m *Metrics) api.AccountUseCase {
	return &account{next: next, metrics: m}
}

func (a *account) GetAccount(ctx context.Context, id string) (*entities.Profile, error) {
	started := time.Now()
	profile, err := a.next.GetAccount(ctx, id)
	a.metrics.Observe(WorkflowGetAccount, started, err)
	return profile, err
}
