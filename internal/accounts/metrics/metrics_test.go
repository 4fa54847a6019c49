package metrics_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goaccounts/internal/accounts/domain/entities"
	"goaccounts/internal/accounts/domain/services"
	"goaccounts/internal/accounts/metrics"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil", err: nil, expected: metrics.OutcomeSuccess},
		{
			name:     "wrapped failure",
			err:      fmt.Errorf("ctx: %w", services.NewFailure(services.KindInvalidCredentials, "m", "s")),
			expected: string(services.KindInvalidCredentials),
		},
		{name: "unexpected", err: errors.New("boom"), expected: metrics.OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, metrics.Outcome(tt.err))
		})
	}
}

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.Count(metrics.WorkflowLogin, metrics.OutcomeSuccess).Inc()

	count, err := testutil.GatherAndCount(reg, "accounts_workflow_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Panics(t, func() { metrics.New(reg) })
}

type stubAccounts struct {
	err error
}

func (s stubAccounts) GetAccount(_ context.Context, id string) (*entities.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entities.Profile{ID: id}, nil
}

type stubLogin struct {
	err error
}

func (s stubLogin) Login(_ context.Context, _, _ string) (*services.Session, error) {
	return nil, s.err
}

type stubRegistration struct{}

func (stubRegistration) Register(_ context.Context, name, email, _ string, avatar entities.Avatar) (*services.Session, error) {
	return &services.Session{Name: name, Email: email, Avatar: avatar, Status: services.StatusSuccess}, nil
}

func TestInstrumentedUseCases(t *testing.T) {
	ctx := context.Background()
	m := metrics.New(prometheus.NewRegistry())

	profile, err := metrics.InstrumentAccount(stubAccounts{}, m).GetAccount(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", profile.ID)

	_, err = metrics.InstrumentAccount(stubAccounts{err: services.NewFailure(services.KindAccountNotFound, "", "")}, m).
		GetAccount(ctx, "acc-2")
	require.Error(t, err)

	_, err = metrics.InstrumentAuthentication(stubLogin{err: errors.New("db down")}, m).Login(ctx, "a@b.co", "x")
	require.Error(t, err)

	session, err := metrics.InstrumentRegistration(stubRegistration{}, m).
		Register(ctx, "Ada", "ada@example.com", "secret1", entities.Avatar{Seed: "ada"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", session.Name)

	assert.InDelta(t, 1, testutil.ToFloat64(m.Count(metrics.WorkflowGetAccount, metrics.OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Count(metrics.WorkflowGetAccount, string(services.KindAccountNotFound))), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Count(metrics.WorkflowLogin, metrics.OutcomeError)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Count(metrics.WorkflowRegister, metrics.OutcomeSuccess)), 0)
}
