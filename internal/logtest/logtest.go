// Package logtest captures slog records for assertions in tests.
package logtest

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// NameKey is the attribute Recorder.Logger uses to tag its loggers.
const NameKey = "logger"

// Record is a captured log line with its attributes flattened into a map.
// Groups are ignored.
type Record struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// Name returns the NameKey attribute, if any.
func (r Record) Name() string {
	s, _ := r.Attrs[NameKey].(string)
	return s
}

// Recorder collects records from every logger it hands out.
type Recorder struct {
	mu      sync.Mutex
	records []Record
}

func NewRecorder() *Recorder { return &Recorder{} }

// Logger returns a logger writing to r, tagged with name.
func (r *Recorder) Logger(name string) *slog.Logger {
	return slog.New(r.Handler().WithAttrs([]slog.Attr{slog.String(NameKey, name)}))
}

// Handler returns an untagged handler writing to r.
func (r *Recorder) Handler() slog.Handler { return &handler{rec: r} }

// Records returns a copy of everything captured so far.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.records)
}

// Names returns the logger name of each captured record in order.
func (r *Recorder) Names() []string {
	recs := r.Records()
	names := make([]string, len(recs))
	for i, rec := range recs {
		names[i] = rec.Name()
	}
	return names
}

func (r *Recorder) add(rec Record) {
	r.mu.Lock()
	r.records = append(r.records, rec)
	r.mu.Unlock()
}

type handler struct {
	rec   *Recorder
	attrs []slog.Attr
}

func (h *handler) Enabled(context.Context, slog.Level) bool { return true }

func (h *handler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Resolve().Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Resolve().Any()
		return true
	})
	h.rec.add(Record{Level: r.Level, Message: r.Message, Attrs: attrs})
	return nil
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &handler{rec: h.rec, attrs: append(slices.Clip(h.attrs), attrs...)}
}

func (h *handler) WithGroup(string) slog.Handler { return h }
