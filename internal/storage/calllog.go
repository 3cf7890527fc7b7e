// Package storage provides the data persistence layer for the call log.
package storage

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"slices"

	"github.com/Veraticus/calllog/internal/common"
	"github.com/Veraticus/calllog/internal/model"
	"golang.org/x/text/cases"
)

// CallLog is an ordered sequence of calls bound to a delimited text file.
// The in-memory sequence and the file are only synchronized by Open and Save.
// A CallLog is not safe for concurrent use, and two logs must not save to the
// same path at the same time.
type CallLog struct {
	path           string
	unresolvedWord string
	calls          []model.Call
}

// Option configures a CallLog.
type Option func(*CallLog)

// WithUnresolvedWord sets the resolved-flag value that marks a call as
// unresolved. It is compared case-insensitively.
func WithUnresolvedWord(word string) Option {
	return func(l *CallLog) {
		if word != "" {
			l.unresolvedWord = word
		}
	}
}

// Open creates a call log bound to path, loading the file if it exists.
func Open(path string, opts ...Option) (*CallLog, error) {
	l := &CallLog{
		path:           path,
		unresolvedWord: model.ResolvedNo,
	}
	for _, opt := range opts {
		opt(l)
	}

	calls, err := readCallsFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("call log file does not exist, starting empty", "path", path)
			return l, nil
		}
		return nil, err
	}

	l.calls = calls
	slog.Debug("loaded call log", "path", path, "calls", len(calls))
	return l, nil
}

// Path returns the file the log is bound to.
func (l *CallLog) Path() string {
	return l.path
}

// Len returns the number of calls.
func (l *CallLog) Len() int {
	return len(l.calls)
}

// Append adds a call to the end of the log. Numbers are not checked for
// uniqueness; use NextNumber to assign them.
func (l *CallLog) Append(call model.Call) {
	l.calls = append(l.calls, call)
}

// At returns the call at position i.
func (l *CallLog) At(i int) (model.Call, error) {
	if i < 0 || i >= len(l.calls) {
		return model.Call{}, fmt.Errorf("%w: %d (len %d)", common.ErrIndexOutOfRange, i, len(l.calls))
	}
	return l.calls[i], nil
}

// All returns the calls in insertion order. The sequence may be ranged over
// any number of times and always reflects the current contents.
func (l *CallLog) All() iter.Seq[model.Call] {
	return func(yield func(model.Call) bool) {
		for _, call := range l.calls {
			if !yield(call) {
				return
			}
		}
	}
}

// Filter returns the calls matching pred, in insertion order.
func (l *CallLog) Filter(pred func(model.Call) bool) iter.Seq[model.Call] {
	return func(yield func(model.Call) bool) {
		for call := range l.All() {
			if pred(call) && !yield(call) {
				return
			}
		}
	}
}

// Unresolved returns the calls whose resolved flag equals the unresolved word,
// ignoring case.
func (l *CallLog) Unresolved() iter.Seq[model.Call] {
	return l.Filter(IsResolvedAs(l.unresolvedWord))
}

// SortedByReason returns a copy of the calls ordered by reason. Calls with
// equal reasons keep their insertion order.
func (l *CallLog) SortedByReason() []model.Call {
	sorted := slices.Clone(l.calls)
	slices.SortStableFunc(sorted, func(a, b model.Call) int {
		return cmp.Compare(a.Reason, b.Reason)
	})
	return sorted
}

// SortedByNumber returns a copy of the calls ordered by number.
func (l *CallLog) SortedByNumber() []model.Call {
	sorted := slices.Clone(l.calls)
	slices.SortStableFunc(sorted, func(a, b model.Call) int {
		return cmp.Compare(a.Number, b.Number)
	})
	return sorted
}

// NextNumber returns one more than the highest call number, or 1 for an
// empty log.
func (l *CallLog) NextNumber() int {
	if len(l.calls) == 0 {
		return 1
	}
	highest := l.calls[0].Number
	for _, call := range l.calls[1:] {
		highest = max(highest, call.Number)
	}
	return highest + 1
}

// Save overwrites the bound file with a header row and every call in order.
func (l *CallLog) Save() (err error) {
	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return common.NewIOError("open", l.path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = common.NewIOError("close", l.path, closeErr)
		}
	}()

	if err := encodeCalls(f, l.calls); err != nil {
		return common.NewIOError("write", l.path, err)
	}

	slog.Info("saved call log", "path", l.path, "calls", len(l.calls))
	return nil
}

// IsResolvedAs returns a predicate matching calls whose resolved flag equals
// word under Unicode case folding.
func IsResolvedAs(word string) func(model.Call) bool {
	want := cases.Fold().String(word)
	return func(call model.Call) bool {
		return cases.Fold().String(call.Resolved) == want
	}
}
