package middleware

import (
	"bytes"
	"context"
	"encoding/binary"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/seatplan/internal/config"
)

// captureWriter captures the response body and status while forwarding to
// the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) { cw.status = code; cw.ResponseWriter.WriteHeader(code) }

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.size+int64(len(b)) <= cw.limit {
		cw.buf.Write(b)
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

func cacheKey(cfg config.CacheConfig, c echo.Context) string {
	return cfg.Prefix + ":img:" + c.Request().URL.Path
}

// encodePayload packs: [2 bytes content-type length][content-type][body]
func encodePayload(contentType string, body []byte) []byte {
	out := make([]byte, 2+len(contentType)+len(body))
	binary.BigEndian.PutUint16(out[0:2], uint16(len(contentType)))
	copy(out[2:], contentType)
	copy(out[2+len(contentType):], body)
	return out
}

func decodePayload(bs []byte) (contentType string, body []byte, ok bool) {
	if len(bs) < 2 {
		return "", nil, false
	}
	n := int(binary.BigEndian.Uint16(bs[0:2]))
	if 2+n > len(bs) {
		return "", nil, false
	}
	return string(bs[2 : 2+n]), bs[2+n:], true
}

// NewImageCache caches successful GET responses of immutable resources
// (floor images) in Redis.  It is a pass-through when caching is disabled
// or rdb is nil.  Bodies larger than MaxBodyBytes are served but not
// cached.
func NewImageCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	limit := int64(cfg.MaxBodyBytes)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !strings.EqualFold(c.Request().Method, http.MethodGet) {
				return next(c)
			}
			ctx := c.Request().Context()
			key := cacheKey(cfg, c)

			if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
				if ct, body, ok := decodePayload(bs); ok {
					c.Response().Header().Set("X-Cache", "HIT")
					return c.Blob(http.StatusOK, ct, body)
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: limit}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if cw.status == http.StatusOK && cw.size <= limit {
				ct := c.Response().Header().Get(echo.HeaderContentType)
				payload := encodePayload(ct, cw.buf.Bytes())
				_ = rdb.SetEx(context.Background(), key, payload, cfg.TTL).Err()
			}
			return nil
		}
	}
}
