package log

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/goknn/pkg/errors"
)

// WarningLogger is the zerolog logger used for library warnings.
// Warning types in pkg/errors implement zerolog.LogObjectMarshaler, so
// structured fields are emitted without reflection.
var WarningLogger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// EnableStructuredWarnings routes library warnings (DegenerateFeatureWarning,
// UndefinedMetricWarning, ...) through zerolog instead of the plain handler.
// The indirection through errors.SetZerologWarnFunc avoids a circular import
// between pkg/errors and pkg/log.
func EnableStructuredWarnings() {
	errors.SetZerologWarnFunc(func(warning error) {
		event := WarningLogger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			event.EmbedObject(obj)
		}
		event.Msg(warning.Error())
	})
}

// DisableStructuredWarnings restores the default warning handler.
func DisableStructuredWarnings() {
	errors.SetZerologWarnFunc(nil)
}
