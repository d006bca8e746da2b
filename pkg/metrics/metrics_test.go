package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-clinic-api/pkg/metrics"
)

func TestHandler_ExponeContadores(t *testing.T) {
	m := metrics.New("clinica_test")
	m.ObserveResolution("membership")
	m.ObserveRedirect()
	m.ObservePermission("pacientes", "create", false)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `clinica_test_tenant_resolutions_total{step="membership"} 1`)
	assert.Contains(t, string(body), `clinica_test_tenant_gate_redirects_total 1`)
	assert.Contains(t, string(body), `clinica_test_access_permission_decisions_total{action="create",module="pacientes",result="deny"} 1`)
}

func TestObserve_MetricsNilNoPanic(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveResolution("session")
		m.ObserveRedirect()
		m.ObservePermission("citas", "view", true)
	})
}
