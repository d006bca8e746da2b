// Package metrics expone contadores Prometheus del control de acceso multi-empresa.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors de la aplicación sobre un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	RequestCount        *prometheus.CounterVec
	TenantResolutions   *prometheus.CounterVec
	GateRedirects       prometheus.Counter
	PermissionDecisions *prometheus.CounterVec
}

// New registra los collectors bajo el namespace indicado.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		RequestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total de requests HTTP atendidos.",
		}, []string{"method", "status"}),
		TenantResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tenant",
			Name:      "resolutions_total",
			Help:      "Resoluciones de empresa actual por paso de la cadena de precedencia.",
		}, []string{"step"}),
		GateRedirects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tenant",
			Name:      "gate_redirects_total",
			Help:      "Requests redirigidos a la selección de empresa.",
		}),
		PermissionDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "access",
			Name:      "permission_decisions_total",
			Help:      "Decisiones de permisos por módulo y resultado.",
		}, []string{"module", "action", "result"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestCount,
		m.TenantResolutions,
		m.GateRedirects,
		m.PermissionDecisions,
	)
	return m
}

// Handler devuelve el handler HTTP de exposición (/metrics).
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveResolution cuenta una resolución de empresa por paso ("session", "membership", "auto_provision", "unresolved").
func (m *Metrics) ObserveResolution(step string) {
	if m == nil {
		return
	}
	m.TenantResolutions.WithLabelValues(step).Inc()
}

// ObserveRedirect cuenta un redirect del gate.
func (m *Metrics) ObserveRedirect() {
	if m == nil {
		return
	}
	m.GateRedirects.Inc()
}

// ObservePermission cuenta una decisión de permisos.
func (m *Metrics) ObservePermission(module, action string, allowed bool) {
	if m == nil {
		return
	}
	result := "deny"
	if allowed {
		result = "allow"
	}
	m.PermissionDecisions.WithLabelValues(module, action, result).Inc()
}

// ObserveRequest cuenta un request HTTP por método y status.
func (m *Metrics) ObserveRequest(method string, status int) {
	if m == nil {
		return
	}
	m.RequestCount.WithLabelValues(method, strconv.Itoa(status)).Inc()
}
