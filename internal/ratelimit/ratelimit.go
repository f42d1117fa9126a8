package ratelimit

import (
	"net/http"

	limiter "github.com/ulule/limiter/v3"
	mhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
)

// Middleware builds an in-memory, per-client-IP rate limiting middleware from
// a "<count>-<period>" spec such as "60-M" (sixty requests per minute).
func Middleware(format string) (func(http.Handler) http.Handler, error) {
	rate, err := limiter.NewRateFromFormatted(format)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(memorystore.NewStore(), rate)
	mw := mhttp.NewMiddleware(instance)
	return mw.Handler, nil
}
