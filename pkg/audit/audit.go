package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/axolutions/linkbio-dashboard/pkg/clientip"
	"github.com/axolutions/linkbio-dashboard/pkg/requestid"
)

// Logger records audit events to a Storage.
type Logger struct {
	storage   Storage
	subject   Extractor
	sessionID Extractor
	now       func() time.Time
}

type Option func(*Logger)

func WithSubjectExtractor(fn Extractor) Option {
	return func(l *Logger) { l.subject = fn }
}

func WithSessionIDExtractor(fn Extractor) Option {
	return func(l *Logger) { l.sessionID = fn }
}

func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

func NewLogger(storage Storage, opts ...Option) *Logger {
	l := &Logger{storage: storage, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Log records a successful action.
func (l *Logger) Log(ctx context.Context, action string, opts ...EventOption) error {
	return l.store(ctx, action, ResultSuccess, nil, opts)
}

// LogError records a failed action with its cause.
func (l *Logger) LogError(ctx context.Context, action string, err error, opts ...EventOption) error {
	return l.store(ctx, action, ResultFailure, err, opts)
}

func (l *Logger) store(ctx context.Context, action string, result Result, cause error, opts []EventOption) error {
	if action == "" {
		return ErrEmptyAction
	}

	e := Event{
		ID:        uuid.NewString(),
		Action:    action,
		Result:    result,
		RequestID: requestid.FromContext(ctx),
		IP:        clientip.FromContext(ctx),
		CreatedAt: l.now().UTC(),
	}
	if cause != nil {
		e.Error = cause.Error()
	}
	if l.subject != nil {
		e.Subject, _ = l.subject(ctx)
	}
	if l.sessionID != nil {
		e.SessionID, _ = l.sessionID(ctx)
	}
	for _, opt := range opts {
		opt(&e)
	}
	e.Checksum = Checksum(e)

	return l.storage.Store(ctx, e)
}
