package safe_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ringi/pkg/utils/logging"
	"github.com/secmon-lab/ringi/pkg/utils/safe"
)

type errCloser struct{}

func (errCloser) Close() error {
	return goerr.New("close failed")
}

type errWriter struct{}

func (errWriter) Write(p []byte) (int, error) {
	return 0, goerr.New("write failed")
}

func loggedContext() (context.Context, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON, false)
	return logging.With(context.Background(), logger), &buf
}

func TestCloseLogsError(t *testing.T) {
	ctx, buf := loggedContext()

	safe.Close(ctx, errCloser{})
	gt.Bool(t, strings.Contains(buf.String(), "close failed")).True()
}

func TestCloseNil(t *testing.T) {
	safe.Close(context.Background(), nil)
}

func TestWriteLogsError(t *testing.T) {
	ctx, buf := loggedContext()

	safe.Write(ctx, errWriter{}, []byte("payload"))
	gt.Bool(t, strings.Contains(buf.String(), "write failed")).True()
}

func TestWriteNil(t *testing.T) {
	safe.Write(context.Background(), nil, []byte("payload"))
}

func TestWriteSuccess(t *testing.T) {
	ctx, logBuf := loggedContext()
	var out bytes.Buffer

	safe.Write(ctx, &out, []byte("payload"))
	gt.Value(t, out.String()).Equal("payload")
	gt.Value(t, logBuf.String()).Equal("")
}
