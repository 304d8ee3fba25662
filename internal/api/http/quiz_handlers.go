package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	auth "github.com/mind-engage/moocloze/internal/auth/middleware"
	"github.com/mind-engage/moocloze/internal/definition"
	"github.com/mind-engage/moocloze/internal/export"
	"github.com/mind-engage/moocloze/internal/exportlog"
)

const maxBodyBytes = 1 << 20

// readDefinition decodes the request body as JSON, or YAML when the
// Content-Type says so.
func readDefinition(w http.ResponseWriter, r *http.Request) (definition.Definition, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return definition.Definition{}, fmt.Errorf("read body: %w", err)
	}
	return definition.Parse(data, definition.FormatForContentType(r.Header.Get("Content-Type")))
}

// POST /render  -> application/xml
func RenderHandler(svc *export.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def, err := readDefinition(w, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		doc, _, err := svc.Render(def)
		if err != nil {
			writeError(w, log, err)
			return
		}
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
		_, _ = w.Write(doc)
	}
}

// POST /fields/render  { "type": "numerical", "answer": 2 }  -> { "token": "..." }
func RenderFieldHandler(svc *export.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f definition.Field
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		tok, err := svc.RenderField(f)
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": tok})
	}
}

type exportRecord struct {
	exportlog.Event
	URL string `json:"url,omitempty"`
}

// POST /exports  -> export record
func CreateExportHandler(svc *export.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def, err := readDefinition(w, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ev, err := svc.Export(r.Context(), def, auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, log, err)
			return
		}
		out := exportRecord{Event: ev}
		if out.URL, err = svc.URL(ev); err != nil {
			log.Warn("blob url", zap.String("id", ev.ID), zap.Error(err))
		}
		w.Header().Set("Location", "/exports/"+ev.ID)
		writeJSON(w, http.StatusCreated, out)
	}
}

// GET /exports?limit=50
func ListExportsHandler(svc *export.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
		list, err := svc.List(r.Context(), limit)
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GET /exports/{id}  -> stored XML document
func DownloadExportHandler(svc *export.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		rc, ev, err := svc.Open(r.Context(), id)
		if err != nil {
			writeError(w, log, err)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+ev.ID+`.xml"`)
		w.Header().Set("Content-Length", strconv.FormatInt(ev.SizeBytes, 10))
		if _, err := io.Copy(w, rc); err != nil {
			log.Warn("export download interrupted", zap.String("id", id), zap.Error(err))
		}
	}
}

func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, export.ErrInvalid), definition.IsInputError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, exportlog.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		log.Error("request failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
