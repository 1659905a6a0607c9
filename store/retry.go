/* retry.go
 * Contains the bounded retry policy applied to store operations. Transient network and timeout
 * errors are retried with exponential backoff; everything else fails immediately
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

// isTransient reports whether an error is worth retrying. mongo.ErrNoDocuments is a
// domain answer, not a failure, so it is always permanent
func isTransient(err error) bool {
	if err == nil || errors.Is(err, mongo.ErrNoDocuments) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}

// withRetry runs fn, retrying transient failures with exponential backoff up to
// s.MaxRetries attempts. The last error is returned once attempts are exhausted
func (s *Store) withRetry(ctx context.Context, op string, fn func() error) error {
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.MaxRetries), ctx)

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return backoff.Permanent(err)
		}
		log.Error().
			Err(err).
			Str("op", op).
			Int("attempt", attempt).
			Msg("transient store error, retrying")
		return err
	}, bo)
}
