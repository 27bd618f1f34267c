// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"golang.org/x/exp/slog"
)

const messageKey = "message"

// SlogConfig is the level configuration of a handler. A record is logged if
// its level is at or above the level of its module, or the default level if
// the module has no rule.
type SlogConfig struct {
	DefaultLevel slog.Level
	Modules      map[string]slog.Level
}

// ParseRules parses level rules such as "error;client=debug;node=info". A
// rule without a module, or with the module *, sets the default level.
func ParseRules(s string) (SlogConfig, error) {
	cfg := SlogConfig{DefaultLevel: slog.LevelError, Modules: map[string]slog.Level{}}
	for _, rule := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' }) {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}

		module, level, ok := strings.Cut(rule, "=")
		if !ok {
			module, level = "", rule
		}

		var l slog.Level
		err := l.UnmarshalText([]byte(strings.TrimSpace(level)))
		if err != nil {
			return SlogConfig{}, errors.BadRequest.WithFormat("invalid log rule %q: %w", rule, err)
		}

		module = strings.ToLower(strings.TrimSpace(module))
		if module == "" || module == "*" {
			cfg.DefaultLevel = l
		} else {
			cfg.Modules[module] = l
		}
	}
	return cfg, nil
}

// New returns a logger that writes to w in the given format, filtered by
// the given rules.
func New(format, rules string, w io.Writer) (*slog.Logger, error) {
	cfg, err := ParseRules(rules)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(format) {
	case "", "text", "plain":
		color := false
		if f, ok := w.(*os.File); ok {
			color = isTerminal(f)
		}
		w = ConsoleSlogWriter(w, color)
	case "json":
	default:
		return nil, errors.BadRequest.WithFormat("log format %q is not supported", format)
	}

	h, err := NewSlogHandler(cfg, w)
	if err != nil {
		return nil, err
	}
	return slog.New(h), nil
}

// ConsoleSlogWriter returns a writer that renders JSON log records as
// human-readable lines.
func ConsoleSlogWriter(w io.Writer, color bool) io.Writer {
	return &zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !color,
		TimeFormat: time.RFC3339,
		FormatLevel: func(i interface{}) string {
			if ll, ok := i.(string); ok {
				return strings.ToUpper(ll)
			}
			return "????"
		},
		FormatMessage: func(i interface{}) string {
			s, ok := i.(string)
			if ok {
				return s
			}
			return fmt.Sprint(i)
		},
	}
}

// NewSlogHandler returns a handler that writes JSON records to w, filtered
// by module level.
func NewSlogHandler(cfg SlogConfig, w io.Writer) (slog.Handler, error) {
	lowestLevel := cfg.DefaultLevel
	modules := make(map[string]slog.Level, len(cfg.Modules))
	for m, l := range cfg.Modules {
		modules[strings.ToLower(m)] = l
		if l < lowestLevel {
			lowestLevel = l
		}
	}

	opts := &slog.HandlerOptions{
		Level: lowestLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key != slog.MessageKey || len(groups) > 0 {
				return a
			}
			if a.Value.Kind() == slog.KindString {
				return slog.Any(messageKey, a.Value)
			}
			return slog.String(messageKey, fmt.Sprint(a.Value.Any()))
		},
	}

	return &logHandler{
		handler:      slog.NewJSONHandler(w, opts),
		defaultLevel: cfg.DefaultLevel,
		lowestLevel:  lowestLevel,
		modules:      modules,
	}, nil
}

type logHandler struct {
	handler      slog.Handler
	defaultLevel slog.Level
	lowestLevel  slog.Level
	modules      map[string]slog.Level
}

func (h *logHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	i := *h
	i.handler = h.handler.WithAttrs(attrs)
	i.defaultLevel = h.levelForAttrs(i.defaultLevel, attrs)
	return &i
}

func (h *logHandler) WithGroup(name string) slog.Handler {
	i := *h
	i.handler = h.handler.WithGroup(name)
	return &i
}

func (h *logHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level < h.lowestLevel {
		return false
	}
	if level < h.levelForAttrs(slog.LevelDebug, Attrs(ctx)) {
		return false
	}
	return h.handler.Enabled(ctx, level)
}

func (h *logHandler) Handle(ctx context.Context, record slog.Record) error {
	level := h.levelFor(h.defaultLevel, record.Attrs)
	level = h.levelForAttrs(level, Attrs(ctx))
	if record.Level < level {
		return nil
	}
	for _, a := range Attrs(ctx) {
		record.AddAttrs(a)
	}
	return h.handler.Handle(ctx, record)
}

func (h *logHandler) levelForAttrs(level slog.Level, attrs []slog.Attr) slog.Level {
	if len(attrs) == 0 {
		return level
	}
	return h.levelFor(level, func(fn func(slog.Attr) bool) {
		for _, a := range attrs {
			if !fn(a) {
				return
			}
		}
	})
}

func (h *logHandler) levelFor(level slog.Level, fn func(func(slog.Attr) bool)) slog.Level {
	fn(func(a slog.Attr) bool {
		if a.Key != "module" {
			return true
		}
		if l, ok := h.modules[strings.ToLower(a.Value.String())]; ok {
			level = l
		}
		return false
	})
	return level
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

// OrDiscard returns l, or a discarding logger if l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
