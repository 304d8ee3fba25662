package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mind-engage/moocloze/internal/definition"
	"github.com/mind-engage/moocloze/internal/exportlog"
	"github.com/mind-engage/moocloze/internal/metrics"
	"github.com/mind-engage/moocloze/internal/storage"
	"github.com/mind-engage/moocloze/pkg/cloze"
)

// ErrInvalid wraps every error caused by the submitted definition.
var ErrInvalid = errors.New("invalid quiz definition")

type EventLog interface {
	Append(ctx context.Context, e exportlog.Event) (exportlog.Event, error)
	Get(ctx context.Context, id string) (exportlog.Event, error)
	List(ctx context.Context, limit int) ([]exportlog.Event, error)
}

// Service renders quiz definitions to Moodle XML and keeps exported
// documents in a blob store.
type Service struct {
	Store  storage.BlobStore
	Log    EventLog
	Logger *zap.Logger
	// Seed seeds shuffling for definitions without their own seed; 0 leaves
	// shuffling to the global source. Each call gets its own generator.
	Seed  uint64
	NewID func() string
}

func New(store storage.BlobStore, log EventLog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{Store: store, Log: log, Logger: logger, NewID: uuid.NewString}
}

func (s *Service) shuffler(def definition.Definition) cloze.Shuffler {
	if def.Seed != nil || s.Seed == 0 {
		return def.Shuffler()
	}
	return rand.New(rand.NewPCG(s.Seed, s.Seed))
}

// Build normalizes def and builds the quiz.
func (s *Service) Build(def definition.Definition) (cloze.Quiz, error) {
	def, err := definition.Normalize(def)
	if err != nil {
		metrics.RenderFailures.WithLabelValues("validation").Inc()
		return cloze.Quiz{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	quiz, err := definition.Build(def, s.shuffler(def))
	if err != nil {
		metrics.RenderFailures.WithLabelValues("build").Inc()
		return cloze.Quiz{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	for _, q := range quiz.Questions {
		for _, tok := range cloze.FindTokens(q.Contents) {
			metrics.FieldsRendered.WithLabelValues(string(tok.Kind)).Inc()
		}
	}
	return quiz, nil
}

// Render returns the file contents for def.
func (s *Service) Render(def definition.Definition) ([]byte, cloze.Quiz, error) {
	quiz, err := s.Build(def)
	if err != nil {
		return nil, cloze.Quiz{}, err
	}
	var buf bytes.Buffer
	if _, err := quiz.WriteTo(&buf); err != nil {
		return nil, cloze.Quiz{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return buf.Bytes(), quiz, nil
}

// RenderField renders a single field definition to its token.
func (s *Service) RenderField(f definition.Field) (string, error) {
	if err := definition.ValidateField(f); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	field, err := definition.NewField(f, s.shuffler(definition.Definition{}))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	tok, err := field.Render()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	metrics.FieldsRendered.WithLabelValues(string(field.Kind())).Inc()
	return tok, nil
}

// Export renders def, stores the document and records it in the log.
// createdBy names the requesting subject and may be empty.
func (s *Service) Export(ctx context.Context, def definition.Definition, createdBy string) (exportlog.Event, error) {
	doc, quiz, err := s.Render(def)
	if err != nil {
		return exportlog.Event{}, err
	}
	id := s.NewID()
	key, err := s.Store.Put("exports/"+id+".xml", bytes.NewReader(doc))
	if err != nil {
		return exportlog.Event{}, fmt.Errorf("store export: %w", err)
	}
	ev, err := s.Log.Append(ctx, exportlog.Event{
		ID:            id,
		Type:          exportlog.TypeQuizExported,
		Title:         def.Title,
		QuestionCount: len(quiz.Questions),
		SizeBytes:     int64(len(doc)),
		BlobKey:       key,
		CreatedBy:     createdBy,
	})
	if err != nil {
		if derr := s.Store.Delete(key); derr != nil {
			s.Logger.Warn("orphaned export blob", zap.String("key", key), zap.Error(derr))
		}
		return exportlog.Event{}, fmt.Errorf("record export: %w", err)
	}
	metrics.QuizzesExported.Inc()
	s.Logger.Info("quiz exported",
		zap.String("id", id),
		zap.String("title", def.Title),
		zap.String("created_by", createdBy),
		zap.Int("questions", len(quiz.Questions)),
		zap.Int("bytes", len(doc)),
	)
	return ev, nil
}

// Open returns the stored document of a previous export.
func (s *Service) Open(ctx context.Context, id string) (io.ReadCloser, exportlog.Event, error) {
	ev, err := s.Log.Get(ctx, id)
	if err != nil {
		return nil, exportlog.Event{}, err
	}
	rc, err := s.Store.Get(ev.BlobKey)
	if err != nil {
		return nil, exportlog.Event{}, fmt.Errorf("open export %s: %w", id, err)
	}
	return rc, ev, nil
}

// URL returns where the stored document of ev can be fetched from the blob
// store directly.
func (s *Service) URL(ev exportlog.Event) (string, error) {
	return s.Store.SignedURL(ev.BlobKey)
}

func (s *Service) List(ctx context.Context, limit int) ([]exportlog.Event, error) {
	return s.Log.List(ctx, limit)
}
