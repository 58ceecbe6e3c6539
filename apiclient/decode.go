package apiclient

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "github.com/jrsteele09/go-console-gateway/internal/errors"
)

// Do performs one call and decodes the JSON body into T. An empty (204)
// response yields (nil, nil).
func Do[T any](ctx context.Context, c *Client, method, path string, body any, opts ...Option) (*T, error) {
	raw, err := c.Request(ctx, method, path, body, opts...)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperrors.NewTransportError(path, fmt.Errorf("decode %T: %w", out, err))
	}
	return &out, nil
}
