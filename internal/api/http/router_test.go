package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	api "github.com/mind-engage/moocloze/internal/api/http"
	auth "github.com/mind-engage/moocloze/internal/auth/middleware"
	"github.com/mind-engage/moocloze/internal/db"
	"github.com/mind-engage/moocloze/internal/export"
	"github.com/mind-engage/moocloze/internal/exportlog"
	"github.com/mind-engage/moocloze/internal/metrics"
	"github.com/mind-engage/moocloze/internal/storage"
)

const sampleJSON = `{
  "version": 1,
  "title": "Sums",
  "questions": [
    {"name": "Sum", "contents": "1+1 = {{field \"sum\"}}",
     "fields": {"sum": {"type": "numerical", "answer": 2}}}
  ]
}`

const sampleYAML = `version: 1
questions:
  - name: Capital
    contents: 'Paris is in {{field "c"}}.'
    fields:
      c: {type: shortanswer, answer: France}
`

func newRouter(t *testing.T, authRequired bool) (http.Handler, *auth.AuthService) {
	t.Helper()
	h, err := db.Open(context.Background(), db.DriverSQLite, "file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	store, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	reg := prometheus.NewRegistry()
	metrics.Register(reg)

	a := auth.NewAuthService("test-secret")
	r := api.NewRouter(api.RouterOptions{
		Service:      export.New(store, exportlog.NewRepo(h), nil),
		Auth:         a,
		Credentials:  auth.Credentials{User: "author", PassHash: string(hash)},
		AuthRequired: authRequired,
		Gatherer:     reg,
		Ready:        h.PingContext,
	})
	return r, a
}

func do(h http.Handler, method, path, contentType, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRenderJSONAndYAML(t *testing.T) {
	r, _ := newRouter(t, false)

	rec := do(r, http.MethodPost, "/render", "application/json", sampleJSON, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("json: status = %d body=%s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "1+1 = {1:NUMERICAL:=2:0}") {
		t.Errorf("token missing:\n%s", rec.Body)
	}

	rec = do(r, http.MethodPost, "/render", "application/yaml", sampleYAML, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("yaml: status = %d body=%s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "{1:SHORTANSWER:=France}") {
		t.Errorf("token missing:\n%s", rec.Body)
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	r, _ := newRouter(t, false)
	for _, body := range []string{
		`{"version": 1, "questions": []}`,
		`{"version": 1, "bogus": true, "questions": []}`,
		`not json`,
	} {
		if rec := do(r, http.MethodPost, "/render", "application/json", body, ""); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", body, rec.Code)
		}
	}
}

func TestRenderField(t *testing.T) {
	r, _ := newRouter(t, false)
	rec := do(r, http.MethodPost, "/fields/render", "application/json",
		`{"type":"multichoice","correct":"Yes","incorrect_answers":["No"],"display_mode":"vertical_buttons"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	var out map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if want := "{1:MULTICHOICE_V:No~=Yes}"; out["token"] != want {
		t.Fatalf("token = %q, want %q", out["token"], want)
	}

	rec = do(r, http.MethodPost, "/fields/render", "application/json", `{"type":"numerical","answer":"x"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid field: status = %d", rec.Code)
	}
}

func TestExportLifecycle(t *testing.T) {
	r, _ := newRouter(t, false)

	rec := do(r, http.MethodPost, "/exports", "application/json", sampleJSON, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d body=%s", rec.Code, rec.Body)
	}
	var created struct {
		exportlog.Event
		URL string `json:"url"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	ev := created.Event
	if ev.ID == "" || ev.Title != "Sums" || ev.QuestionCount != 1 || ev.CreatedBy != "local" {
		t.Fatalf("event = %+v", ev)
	}
	if !strings.HasPrefix(created.URL, "file://") || !strings.HasSuffix(created.URL, "/exports/"+ev.ID+".xml") {
		t.Fatalf("url = %q", created.URL)
	}

	rec = do(r, http.MethodGet, "/exports", "", "", "")
	var list []exportlog.Event
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil || len(list) != 1 || list[0].ID != ev.ID {
		t.Fatalf("list = %+v, %v", list, err)
	}

	rec = do(r, http.MethodGet, "/exports/"+ev.ID, "", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("download: status = %d", rec.Code)
	}
	if !strings.HasSuffix(rec.Body.String(), "</quiz>\n") {
		t.Errorf("download is not a quiz document:\n%s", rec.Body)
	}

	if rec := do(r, http.MethodGet, "/exports/missing", "", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing: status = %d", rec.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	r, a := newRouter(t, true)

	if rec := do(r, http.MethodPost, "/render", "application/json", sampleJSON, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: status = %d", rec.Code)
	}

	rec := do(r, http.MethodPost, "/auth/login", "application/json", `{"username":"author","password":"pw"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status = %d", rec.Code)
	}
	var login map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&login); err != nil {
		t.Fatal(err)
	}
	if rec := do(r, http.MethodPost, "/exports", "application/json", sampleJSON, login["access_token"]); rec.Code != http.StatusCreated {
		t.Fatalf("author export: status = %d", rec.Code)
	}

	viewer, _ := a.IssueJWT("v", "viewer")
	if rec := do(r, http.MethodPost, "/exports", "application/json", sampleJSON, viewer); rec.Code != http.StatusForbidden {
		t.Fatalf("viewer export: status = %d", rec.Code)
	}
	if rec := do(r, http.MethodPost, "/render", "application/json", sampleJSON, viewer); rec.Code != http.StatusOK {
		t.Fatalf("viewer render: status = %d", rec.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	r, _ := newRouter(t, false)
	for _, p := range []string{"/healthz", "/readyz", "/metrics"} {
		if rec := do(r, http.MethodGet, p, "", "", ""); rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d", p, rec.Code)
		}
	}
}

func TestPublisherDownloadsButCannotList(t *testing.T) {
	r, a := newRouter(t, true)
	tok, _ := a.IssueJWT("ci-bot", "publisher")

	rec := do(r, http.MethodPost, "/exports", "application/json", sampleJSON, tok)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", rec.Code)
	}
	var ev exportlog.Event
	if err := json.NewDecoder(rec.Body).Decode(&ev); err != nil {
		t.Fatal(err)
	}
	if ev.CreatedBy != "ci-bot" {
		t.Fatalf("created_by = %q", ev.CreatedBy)
	}
	if rec := do(r, http.MethodGet, "/exports/"+ev.ID, "", "", tok); rec.Code != http.StatusOK {
		t.Fatalf("download: status = %d", rec.Code)
	}
	if rec := do(r, http.MethodGet, "/exports", "", "", tok); rec.Code != http.StatusForbidden {
		t.Fatalf("list: status = %d", rec.Code)
	}
}
