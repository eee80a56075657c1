package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/goknn/pkg/errors"
)

func TestToLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{level: "debug", want: slog.LevelDebug},
		{level: "info", want: slog.LevelInfo},
		{level: "warn", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := ToLogLevel(tt.level); got != tt.want {
				t.Errorf("ToLogLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestToLogLevelPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ToLogLevel should panic on unknown level")
		}
	}()
	ToLogLevel("verbose")
}

func TestErrFmtHandlerAddsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	handler := WrapByErrFmtHandler(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(handler)

	err := errors.NewNotFittedError("KNNClassifier", "Predict")
	logger.Error("prediction failed", ErrAttr(err))

	var record map[string]any
	if jsonErr := json.Unmarshal(buf.Bytes(), &record); jsonErr != nil {
		t.Fatalf("log output is not JSON: %v", jsonErr)
	}
	if _, ok := record[StacktraceAttrKey]; !ok {
		t.Errorf("log record should carry a %q attribute, got: %s", StacktraceAttrKey, buf.String())
	}
}

func TestErrFmtHandlerPassesThrough(t *testing.T) {
	var buf bytes.Buffer
	handler := WrapByErrFmtHandler(slog.NewJSONHandler(&buf, nil))

	if !handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("wrapped handler should report Info as enabled")
	}

	logger := slog.New(handler)
	logger.Info("fit complete", SamplesKey, 150, FeaturesKey, 4)

	if !strings.Contains(buf.String(), SamplesKey) {
		t.Errorf("log record should carry %q, got: %s", SamplesKey, buf.String())
	}
}

func TestEnableStructuredWarnings(t *testing.T) {
	var buf bytes.Buffer
	original := WarningLogger
	WarningLogger = zerolog.New(&buf)
	defer func() {
		WarningLogger = original
		DisableStructuredWarnings()
	}()

	EnableStructuredWarnings()
	errors.Warn(errors.NewDegenerateFeatureWarning("StandardScaler", 1, 0))

	out := buf.String()
	if !strings.Contains(out, "DegenerateFeatureWarning") {
		t.Errorf("structured warning should carry its type, got: %s", out)
	}
	if !strings.Contains(out, `"column":1`) {
		t.Errorf("structured warning should carry the column, got: %s", out)
	}
}
