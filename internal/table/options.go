package table

import (
	"github.com/google/uuid"

	"github.com/dshills/gridview/internal/logging"
	"github.com/dshills/gridview/internal/notify"
	"github.com/dshills/gridview/internal/sorting"
)

// Option configures a Table.
type Option func(*Table)

// WithWindowLength sets the number of rows visible at once.
func WithWindowLength(n int) Option {
	return func(t *Table) {
		t.windowLength = n
	}
}

// WithAlgorithm selects the sort algorithm.
func WithAlgorithm(a sorting.Algorithm) Option {
	return func(t *Table) {
		t.algorithm = a
	}
}

// WithNotifier sets the event sink. Without one events are dropped.
func WithNotifier(n *notify.Notifier) Option {
	return func(t *Table) {
		t.notifier = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(t *Table) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithID sets the table ID carried by events. A random ID is used otherwise.
func WithID(id uuid.UUID) Option {
	return func(t *Table) {
		t.id = id
	}
}
