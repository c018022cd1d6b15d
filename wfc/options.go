package wfc

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Option customizes a Model.
type Option func(*Model)

// WithLogger routes engine debug output (collapse choices, contradictions)
// to l. The default logger discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
