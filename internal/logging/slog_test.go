// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestParseRules(t *testing.T) {
	cfg, err := ParseRules("error;client=debug;Node=info")
	require.NoError(t, err)
	require.Equal(t, slog.LevelError, cfg.DefaultLevel)
	require.Equal(t, slog.LevelDebug, cfg.Modules["client"])
	require.Equal(t, slog.LevelInfo, cfg.Modules["node"])

	cfg, err = ParseRules("*=warn")
	require.NoError(t, err)
	require.Equal(t, slog.LevelWarn, cfg.DefaultLevel)

	_, err = ParseRules("client=loud")
	require.Error(t, err)
}

func TestModuleLevels(t *testing.T) {
	buf := new(bytes.Buffer)
	cfg, err := ParseRules("error;client=debug")
	require.NoError(t, err)
	h, err := NewSlogHandler(cfg, buf)
	require.NoError(t, err)
	logger := slog.New(h)

	logger.Info("dropped")
	logger.With("module", "node").Info("dropped too")
	logger.With("module", "client").Debug("kept")
	logger.Info("kept too", "module", "client")
	logger.Error("always")

	out := buf.String()
	require.NotContains(t, out, "dropped")
	require.Contains(t, out, `"message":"kept"`)
	require.Contains(t, out, `"message":"kept too"`)
	require.Contains(t, out, `"message":"always"`)
}

func TestLoggingCtxAttrs(t *testing.T) {
	buf := new(bytes.Buffer)
	h, err := NewSlogHandler(SlogConfig{DefaultLevel: slog.LevelDebug}, buf)
	require.NoError(t, err)
	logger := slog.New(h)

	ctx := With(context.Background(), "foo", "bar")
	logger.InfoContext(ctx, "Hello world")
	require.Contains(t, buf.String(), `"foo":"bar"`)
}

func TestPlainLogging(t *testing.T) {
	buf := new(bytes.Buffer)
	handler, err := NewSlogHandler(SlogConfig{
		DefaultLevel: slog.LevelDebug,
	}, ConsoleSlogWriter(buf, false))
	require.NoError(t, err)
	logger := slog.New(stripTime{handler})

	logger.Info("Hello world")
	require.Equal(t, testTime.Format(time.RFC3339)+" INFO Hello world\n", buf.String())
}

func TestJSONLogging(t *testing.T) {
	buf := new(bytes.Buffer)
	handler, err := NewSlogHandler(SlogConfig{
		DefaultLevel: slog.LevelDebug,
	}, buf)
	require.NoError(t, err)
	logger := slog.New(stripTime{handler})

	logger.Info("Hello world")
	require.Equal(t, `{`+
		`"time":"`+testTime.Format(time.RFC3339)+`",`+
		`"level":"INFO",`+
		`"message":"Hello world"`+
		`}`+"\n", buf.String())
}

func TestNewFormats(t *testing.T) {
	buf := new(bytes.Buffer)
	logger, err := New("json", "info", buf)
	require.NoError(t, err)
	logger.Info("hi", "hash", AsHex([]byte{0xab}))
	require.True(t, strings.HasPrefix(buf.String(), "{"))
	require.Contains(t, buf.String(), `"hash":"ab"`)

	_, err = New("xml", "info", buf)
	require.Error(t, err)
}

func TestDiscard(t *testing.T) {
	require.NotNil(t, OrDiscard(nil))
	require.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}

type stripTime struct {
	slog.Handler
}

var testTime = time.Date(2000, 1, 1, 0, 0, 0, 0, time.Local)

func (s stripTime) Handle(ctx context.Context, r slog.Record) error {
	r.Time = testTime
	return s.Handler.Handle(ctx, r)
}

func (s stripTime) WithAttrs(attrs []slog.Attr) slog.Handler {
	return stripTime{s.Handler.WithAttrs(attrs)}
}

func (s stripTime) WithGroup(name string) slog.Handler {
	return stripTime{s.Handler.WithGroup(name)}
}
