package metadata

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnavailable   = errors.New("source unavailable")
	ErrMalformed     = errors.New("source malformed")
	ErrUnreadable    = errors.New("file unreadable")
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error that names the source and operation while tagging it
// with marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, source, operation, message string, err error) error {
	detail := buildDetail(source, operation, message)
	if marker == nil {
		marker = ErrMalformed
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// KindOf maps an error to the event kind it represents.
func KindOf(err error) EventKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnavailable):
		return EventUnavailable
	case errors.Is(err, ErrUnreadable):
		return EventUnreadable
	default:
		return EventMalformed
	}
}

func buildDetail(source, operation, message string) string {
	parts := make([]string, 0, 3)
	if source = strings.TrimSpace(source); source != "" {
		parts = append(parts, source)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "extraction failure"
	}
	return strings.Join(parts, ": ")
}
