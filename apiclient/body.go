package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Raw is a pre-encoded body, such as a multipart form, that is sent as is.
// ContentType is optional; the JSON content type is never added.
type Raw struct {
	Reader      io.Reader
	ContentType string
}

// encodeBody returns the request body and the Content-Type it needs. Raw
// bodies, readers and byte slices pass through untouched, everything else is
// sent as JSON.
func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case Raw:
		return b.Reader, b.ContentType, nil
	case *Raw:
		if b == nil {
			return nil, "", nil
		}
		return b.Reader, b.ContentType, nil
	case []byte:
		return bytes.NewReader(b), "", nil
	case io.Reader:
		return b, "", nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal request body: %w", err)
	}
	return bytes.NewReader(data), contentTypeJSON, nil
}
