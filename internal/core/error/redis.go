package errx

import (
	"errors"

	"github.com/redis/go-redis/v9"
)

// WrapRedis maps Redis errors to the unified Error type. A missing key is not
// treated as a failure by callers, so redis.Nil maps to KindNotFound.
func WrapRedis(err error) *Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, redis.Nil) {
		return New(KindNotFound, 0, SessionStoreMessage, err)
	}

	return New(KindInternal, 0, SessionStoreMessage, err)
}
