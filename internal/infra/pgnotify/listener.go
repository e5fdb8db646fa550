// Package pgnotify receives PostgreSQL NOTIFY payloads on a dedicated
// connection and hands them to a callback, reconnecting when the
// connection drops.
package pgnotify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	minBackoff = 250 * time.Millisecond
	maxBackoff = 10 * time.Second
)

// Handler receives the raw payload of one notification.
type Handler func(payload string)

type Listener struct {
	dsn      string
	channel  string
	handle   Handler
	onListen func(first bool)

	// ready is closed after the first successful LISTEN.
	ready chan struct{}
}

type Option func(*Listener)

// WithOnListen registers fn to run after every successful LISTEN. first is
// false on reconnects, when notifications sent while disconnected are lost.
func WithOnListen(fn func(first bool)) Option {
	return func(l *Listener) { l.onListen = fn }
}

func New(dsn, channel string, handle Handler, opts ...Option) *Listener {
	l := &Listener{
		dsn:     dsn,
		channel: channel,
		handle:  handle,
		ready:   make(chan struct{}),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Ready is closed once the listener has subscribed for the first time.
func (l *Listener) Ready() <-chan struct{} {
	return l.ready
}

// Run blocks until ctx is done. Connection failures are logged and retried
// with exponential backoff; Run only returns ctx's error.
func (l *Listener) Run(ctx context.Context) error {
	backoff := minBackoff
	first := true

	for {
		err := l.listen(ctx, func() {
			backoff = minBackoff

			if l.onListen != nil {
				l.onListen(first)
			}

			if first {
				first = false
				close(l.ready)
			}
		})
		if ctx.Err() != nil {
			return ctx.Err()
		}

		zap.L().Warn("notification listener disconnected",
			zap.String("channel", l.channel),
			zap.Duration("retry_in", backoff),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (l *Listener) listen(ctx context.Context, onListening func()) error {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		cctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = conn.Close(cctx)
	}()

	_, err = conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize())
	if err != nil {
		return fmt.Errorf("listen %s: %w", l.channel, err)
	}

	zap.L().Info("listening for notifications", zap.String("channel", l.channel))
	onListening()

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}

			return fmt.Errorf("wait for notification: %w", err)
		}

		l.handle(n.Payload)
	}
}
