package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mind-engage/moocloze/internal/metrics"
)

func TestMiddlewareCountsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/exports/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(metrics.RequestCounter.WithLabelValues("GET", "/exports/{id}", "404"))
	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/exports/"+id, nil))
	}
	after := testutil.ToFloat64(metrics.RequestCounter.WithLabelValues("GET", "/exports/{id}", "404"))
	if after-before != 2 {
		t.Fatalf("counter delta = %v, want 2", after-before)
	}
}

func TestHandlerExposesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.Register(reg)
	metrics.QuizzesExported.Inc()
	metrics.FieldsRendered.WithLabelValues("NUMERICAL").Inc()

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"moocloze_quizzes_exported_total", `moocloze_fields_rendered_total{kind="NUMERICAL"}`} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
