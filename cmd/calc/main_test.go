package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
)

func TestFormatter(t *testing.T) {
	cases := []struct {
		base string
		x    calc.Number
		want string
	}{
		{"", calc.IntInt64(255), "255"},
		{"dec", calc.RatFrac(1, 2), "1/2"},
		{"hex", calc.IntInt64(255), "0xFF"},
		{"bin", calc.IntInt64(-5), "-0b101"},
		{"hex", calc.RatFrac(1, 2), "1/2"},
		{"bin", calc.NewComplex(2i), "2i"},
	}
	for _, c := range cases {
		show, err := formatter(c.base)
		require.NoError(t, err, c.base)
		assert.Equal(t, c.want, show(c.x), "base %q", c.base)
	}

	_, err := formatter("oct")
	assert.EqualError(t, err, `unknown base "oct" (want "hex" or "bin")`)
}

func TestREPL(t *testing.T) {
	in := strings.NewReader("x = 2\n\nx + 1\nf(a) = a x\n:vars\n:funcs\n:history\n:clear\n:history\nnosuch\n")
	var out strings.Builder
	sess := calc.NewSession()
	defer sess.Close()
	repl(sess, in, &out, calc.Format, false)

	got := out.String()
	assert.True(t, strings.HasPrefix(got, "calc "))
	assert.Contains(t, got, "> 2\n")
	assert.Contains(t, got, "> 3\n")
	assert.Contains(t, got, "> x = 2\n")
	assert.Contains(t, got, "> f(a) = ")
	assert.Contains(t, got, "x = 2 = 2\nx + 1 = 3\n")
	assert.Contains(t, got, `undefined variable: "nosuch"`)
	assert.Equal(t, 1, strings.Count(got, "x + 1 = 3"), "history printed after :clear")
}

func TestREPLPreview(t *testing.T) {
	in := strings.NewReader("x = 2\n:vars\n")
	var out strings.Builder
	sess := calc.NewSession()
	defer sess.Close()
	repl(sess, in, &out, calc.Format, true)

	got := out.String()
	assert.Contains(t, got, "> 2\n")
	assert.NotContains(t, got, "x = 2")
}

func TestNewLogger(t *testing.T) {
	cases := []struct {
		name    string
		cfg     config.LogConfig
		enabled zapcore.Level
		hidden  zapcore.Level
	}{
		{"default", config.Default().Logging, zapcore.InfoLevel, zapcore.DebugLevel},
		{"development", config.LogConfig{Development: true}, zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"level", config.LogConfig{Level: "warn"}, zapcore.WarnLevel, zapcore.InfoLevel},
		{"devlevel", config.LogConfig{Level: "error", Development: true}, zapcore.ErrorLevel, zapcore.WarnLevel},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			logger, err := newLogger(c.cfg)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(c.enabled))
			assert.False(t, logger.Core().Enabled(c.hidden))
		})
	}

	_, err := newLogger(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}
