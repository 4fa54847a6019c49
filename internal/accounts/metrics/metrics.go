// Package metrics содержит счетчики Prometheus для сценариев учетных записей.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"goaccounts/internal/accounts/domain/services"
)

// Имена сценариев в метках.
const (
	WorkflowRegister   = "register"
	WorkflowLogin      = "login"
	WorkflowGetAccount = "get_account"
)

// Исходы сценариев, кроме видов отказов.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics хранит зарегистрированные коллекторы.
type Metrics struct {
	workflows *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// New создает и регистрирует коллекторы в reg.
// Паникует при повторной регистрации, как принято в prometheus.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		workflows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accounts_workflow_total",
				Help: "Total number of account workflow executions by outcome",
			},
			[]string{"workflow", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "accounts_workflow_duration_seconds",
				Help:    "Account workflow duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"workflow"},
		),
	}
	reg.MustRegister(m.workflows, m.duration)
	return m
}

// Observe записывает исход и длительность сценария.
func (m *Metrics) Observe(workflow string, started time.Time, err error) {
	m.workflows.WithLabelValues(workflow, Outcome(err)).Inc()
	m.duration.WithLabelValues(workflow).Observe(time.Since(started).Seconds())
}

// Count возвращает счетчик для пары сценарий/исход.
func (m *Metrics) Count(workflow, outcome string) prometheus.Counter {
	return m.workflows.WithLabelValues(workflow, outcome)
}

// Outcome возвращает метку исхода: success, вид отказа или error.
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	var failure *services.Failure
	if errors.As(err, &failure) {
		return string(failure.Kind)
	}
	return OutcomeError
}
