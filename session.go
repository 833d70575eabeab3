package calc

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrSessionClosed is returned by Session methods after Close.
var ErrSessionClosed = errors.New("session closed")

// Session owns one Context and the history of its evaluations. A single
// goroutine performs all work on the Context, so a Session is safe to use
// from any number of goroutines. Requests are served in the order they
// arrive.
type Session struct {
	reqs chan func(*sessionState)
	quit chan struct{}
	done chan struct{}
	log  *zap.Logger
	once sync.Once
}

type sessionState struct {
	ctx     *Context
	history []string
	limit   int
}

// SessionOption is an option used when creating a session.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	log   *zap.Logger
	limit int
	ctx   *Context
}

// WithLogger sets the logger for evaluations. The default discards logs.
func WithLogger(l *zap.Logger) SessionOption {
	return func(c *sessionConfig) {
		c.log = l
	}
}

// WithHistoryLimit sets the number of history entries kept. When the limit
// is reached, the oldest entry is dropped. Zero means no limit.
func WithHistoryLimit(n int) SessionOption {
	return func(c *sessionConfig) {
		c.limit = n
	}
}

// WithContext sets the initial variables and functions of the session to a
// clone of ctx.
func WithContext(ctx *Context) SessionOption {
	return func(c *sessionConfig) {
		c.ctx = ctx.Clone()
	}
}

// DefaultHistoryLimit is the history limit of sessions created without
// WithHistoryLimit.
const DefaultHistoryLimit = 100

// NewSession creates a session and starts its owner goroutine. Call Close to
// stop it.
func NewSession(opts ...SessionOption) *Session {
	cfg := sessionConfig{limit: DefaultHistoryLimit}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = zap.NewNop()
	}
	if cfg.ctx == nil {
		cfg.ctx = NewContext()
	}
	s := &Session{
		reqs: make(chan func(*sessionState)),
		quit: make(chan struct{}),
		done: make(chan struct{}),
		log:  cfg.log,
	}
	st := &sessionState{ctx: cfg.ctx, limit: cfg.limit}
	go s.run(st)
	return s
}

func (s *Session) run(st *sessionState) {
	defer close(s.done)
	for {
		select {
		case f := <-s.reqs:
			f(st)
		case <-s.quit:
			return
		}
	}
}

// do runs f on the owner goroutine and waits for it to finish. ctx bounds
// only the wait: once the owner has accepted f, it runs to completion even if
// ctx is canceled.
func (s *Session) do(ctx context.Context, f func(*sessionState)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fin := make(chan struct{})
	req := func(st *sessionState) {
		defer close(fin)
		f(st)
	}
	select {
	case s.reqs <- req:
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-fin:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Evaluate evaluates text with the session's context. Assignments and
// definitions persist for later evaluations. Successful evaluations of
// non-blank text are recorded in the history as "text = result".
func (s *Session) Evaluate(ctx context.Context, text string) (Number, error) {
	var (
		r      Number
		everr  error
		expr   = strings.TrimSpace(text)
		logger = s.log.With(zap.String("expr", expr))
	)
	err := s.do(ctx, func(st *sessionState) {
		start := time.Now()
		r, everr = Evaluate(text, st.ctx)
		if everr != nil {
			logger.Debug("evaluation failed", zap.Duration("elapsed", time.Since(start)), zap.Error(everr))
			return
		}
		logger.Debug("evaluated", zap.Stringer("kind", r.Kind()), zap.Duration("elapsed", time.Since(start)))
		st.record(expr + " = " + Format(r))
	})
	if err != nil {
		return Number{}, err
	}
	return r, everr
}

// record appends an entry to the history, dropping the oldest entries beyond
// the limit.
func (st *sessionState) record(entry string) {
	st.history = append(st.history, entry)
	if st.limit > 0 && len(st.history) > st.limit {
		n := copy(st.history, st.history[len(st.history)-st.limit:])
		clear(st.history[n:])
		st.history = st.history[:n]
	}
}

// Preview evaluates text with a clone of the session's context. Nothing
// about the session changes, including its history.
func (s *Session) Preview(ctx context.Context, text string) (Number, error) {
	var (
		r     Number
		everr error
	)
	err := s.do(ctx, func(st *sessionState) {
		r, everr = Preview(text, st.ctx)
	})
	if err != nil {
		return Number{}, err
	}
	return r, everr
}

// Vars returns the session's global variables.
func (s *Session) Vars(ctx context.Context) (map[string]Number, error) {
	var r map[string]Number
	err := s.do(ctx, func(st *sessionState) {
		r = st.ctx.Vars()
	})
	return r, err
}

// Funcs returns the definitions of the session's user functions in order of
// name.
func (s *Session) Funcs(ctx context.Context) ([]string, error) {
	var r []string
	err := s.do(ctx, func(st *sessionState) {
		for _, name := range st.ctx.Funcs() {
			r = append(r, st.ctx.Func(name).String())
		}
	})
	return r, err
}

// History returns a copy of the session's history, oldest first.
func (s *Session) History(ctx context.Context) ([]string, error) {
	var r []string
	err := s.do(ctx, func(st *sessionState) {
		r = append(r, st.history...)
	})
	return r, err
}

// ClearHistory removes all history entries.
func (s *Session) ClearHistory(ctx context.Context) error {
	return s.do(ctx, func(st *sessionState) {
		clear(st.history)
		st.history = st.history[:0]
	})
}

// Close stops the session's goroutine and waits for it to exit. A request
// already running finishes first. Close is safe to call more than once.
func (s *Session) Close() error {
	s.once.Do(func() { close(s.quit) })
	<-s.done
	return nil
}
