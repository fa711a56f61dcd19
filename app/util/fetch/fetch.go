package fetch

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Bytes sends the request prepared in a and returns the status code and body.
// The agent cannot be cancelled, so it runs on its own goroutine and Bytes
// returns as soon as ctx is done. The timeout is cut to the ctx deadline.
func Bytes(ctx context.Context, a *fiber.Agent, timeout time.Duration) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
		if timeout <= 0 {
			return 0, nil, context.DeadlineExceeded
		}
	}

	type result struct {
		code int
		body []byte
		errs []error
	}

	done := make(chan result, 1)
	go func() {
		code, body, errs := a.Timeout(timeout).Bytes()
		done <- result{code, body, errs}
	}()

	select {
	case <-ctx.Done():
		return 0, nil, ctx.Err()
	case r := <-done:
		if len(r.errs) > 0 {
			return r.code, r.body, errors.Join(r.errs...)
		}
		return r.code, r.body, nil
	}
}
