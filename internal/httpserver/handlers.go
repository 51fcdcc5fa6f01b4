package httpserver

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reviewmarket/api/internal/events"
	"github.com/reviewmarket/api/internal/logging"
	"github.com/reviewmarket/api/internal/transport"
)

const maxBodyBytes = 1 << 20

// requestFields flattens the JSON body and the query string into one field
// map, so handlers see the same view whichever way a client sends data.
func requestFields(c echo.Context) transport.Fields {
	body, _ := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	return transport.Normalize(body, c.QueryParams())
}

// pathID parses a numeric path segment. Non-numeric ids never match a
// resource, so they fall through to the unknown-route response.
func pathID(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.ErrNotFound
	}
	return uint(v), nil
}

// publish sends a lifecycle event best-effort: failures are logged, never
// surfaced to the client.
func publish(c echo.Context, p *events.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.Publish(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("event_publish_failed", "topic", topic, "error", err)
	}
}
