package scope

import "log/slog"

// Handle is a logger that is either owned by its holder or borrowed from
// elsewhere. The zero Handle resolves to nil, which Enter treats as the
// fallback logger.
type Handle struct {
	owned    slog.Logger
	ref      *slog.Logger
	borrowed bool
}

// Owned returns a handle holding its own copy of l.
func Owned(l slog.Logger) Handle {
	return Handle{owned: l}
}

// Borrowed returns a handle referring to l. Later changes to *l are visible
// through the handle.
func Borrowed(l *slog.Logger) Handle {
	return Handle{ref: l, borrowed: true}
}

// Logger returns the logger the handle stands for.
func (h *Handle) Logger() *slog.Logger {
	if h.borrowed {
		return h.ref
	}
	if h.owned.Handler() == nil {
		return nil
	}
	return &h.owned
}

// IsBorrowed reports whether the handle was built with Borrowed.
func (h *Handle) IsBorrowed() bool { return h.borrowed }
