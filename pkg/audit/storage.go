package audit

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/axolutions/linkbio-dashboard/pkg/logger"
)

// LogStorage writes events as structured log records.
type LogStorage struct {
	logger *slog.Logger
}

func NewLogStorage(log *slog.Logger) *LogStorage {
	if log == nil {
		log = logger.Discard()
	}
	return &LogStorage{logger: log}
}

func (s *LogStorage) Store(ctx context.Context, e Event) error {
	attrs := []slog.Attr{
		logger.Component("audit"),
		logger.Event(e.Action),
		slog.String("audit_id", e.ID),
		slog.String("result", string(e.Result)),
		slog.String("checksum", e.Checksum),
	}
	if e.Subject != "" {
		attrs = append(attrs, logger.Subject(e.Subject))
	}
	if e.Error != "" {
		attrs = append(attrs, slog.String("error", e.Error))
	}
	if len(e.Metadata) > 0 {
		attrs = append(attrs, slog.Any("metadata", e.Metadata))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "audit", attrs...)
	return nil
}

// MongoStorage inserts events into a collection.
type MongoStorage struct {
	collection *mongo.Collection
}

func NewMongoStorage(db *mongo.Database, collection string) *MongoStorage {
	return &MongoStorage{collection: db.Collection(collection)}
}

func (s *MongoStorage) Store(ctx context.Context, e Event) error {
	if _, err := s.collection.InsertOne(ctx, e); err != nil {
		return errors.Join(ErrStorageNotAvailable, err)
	}
	return nil
}

// MemoryStorage keeps events in memory.
type MemoryStorage struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Store(ctx context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

// Events returns a copy of what was stored.
func (s *MemoryStorage) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}
