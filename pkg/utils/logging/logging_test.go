package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ringi/pkg/utils/logging"
)

func TestFromFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	gt.V(t, logging.From(ctx)).Equal(logging.Default())
}

func TestWithAndFrom(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON, false)
	ctx := logging.With(context.Background(), logger)

	logging.From(ctx).Info("hello", "key", "value")

	var record map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	gt.V(t, record["msg"]).Equal("hello")
	gt.V(t, record["key"]).Equal("value")
}

func TestSecretRedaction(t *testing.T) {
	type creds struct {
		User  string `json:"user"`
		Token string `json:"token" masq:"secret"`
	}

	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON, false)
	logger.Info("login", "creds", creds{User: "ayako", Token: "s3cr3t"})

	out := buf.String()
	gt.B(t, strings.Contains(out, "ayako")).True()
	gt.B(t, strings.Contains(out, "s3cr3t")).False()
}

func TestParseLevel(t *testing.T) {
	level, err := logging.ParseLevel("warn")
	gt.NoError(t, err)
	gt.V(t, level).Equal(slog.LevelWarn)

	_, err = logging.ParseLevel("verbose")
	gt.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	format, err := logging.ParseFormat("json")
	gt.NoError(t, err)
	gt.V(t, format).Equal(logging.FormatJSON)

	_, err = logging.ParseFormat("yaml")
	gt.Error(t, err)
}
