// Package vault is a small JSON-over-HTTP client for the data vault service
// that manages a storage root.
package vault

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/fulmenhq/datavault/pkg/logger"
)

// maxErrorBody caps how much of an error response is kept in an APIError.
const maxErrorBody = 4 << 10

// Client talks to one data vault service.
type Client struct {
	baseURL string
	http    HTTPDoer
}

// NewClient returns a client for the service at baseURL. Trailing slashes
// are ignored.
func NewClient(baseURL string, doer HTTPDoer) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    doer,
	}
}

// BaseURL returns the normalized service URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// StartImport submits an import job. The path must be absolute; it is
// resolved by the service, not by the client.
func (c *Client) StartImport(ctx context.Context, cmd ImportCommand) (*ImportJob, error) {
	if cmd.Path == "" {
		return nil, fmt.Errorf("%w: import path is empty", ErrInvalidRequest)
	}
	var job ImportJob
	if err := c.do(ctx, http.MethodPost, "/imports", cmd, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ImportStatus fetches an import job.
func (c *Client) ImportStatus(ctx context.Context, id uuid.UUID) (*ImportJob, error) {
	var job ImportJob
	if err := c.do(ctx, http.MethodGet, "/imports/"+id.String(), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// NewLayer closes the current top layer and opens a new one.
func (c *Client) NewLayer(ctx context.Context) (*LayerStatus, error) {
	var status LayerStatus
	if err := c.do(ctx, http.MethodPost, "/layers", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// LayerIDs lists the ids of all layers.
func (c *Client) LayerIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := c.do(ctx, http.MethodGet, "/layers/ids", nil, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// TopLayer fetches the status of the top layer.
func (c *Client) TopLayer(ctx context.Context) (*LayerStatus, error) {
	var status LayerStatus
	if err := c.do(ctx, http.MethodGet, "/layers/top", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ArchiveLayer asks the service to archive a closed layer and returns its status.
func (c *Client) ArchiveLayer(ctx context.Context, id int64) (*LayerStatus, error) {
	var status LayerStatus
	if err := c.do(ctx, http.MethodPost, "/layers/"+strconv.FormatInt(id, 10)+"/archive", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Layer fetches the status of one layer.
func (c *Client) Layer(ctx context.Context, id int64) (*LayerStatus, error) {
	var status LayerStatus
	if err := c.do(ctx, http.MethodGet, "/layers/"+strconv.FormatInt(id, 10), nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// StartConsistencyCheck submits a consistency check.
func (c *Client) StartConsistencyCheck(ctx context.Context, req ConsistencyCheckRequest) (*ConsistencyCheck, error) {
	switch req.Type {
	case CheckListingRecords:
		if req.LayerID == nil {
			return nil, fmt.Errorf("%w: %s check needs a layer id", ErrInvalidRequest, req.Type)
		}
	case CheckLayerIDs:
		if req.LayerID != nil {
			return nil, fmt.Errorf("%w: %s check takes no layer id", ErrInvalidRequest, req.Type)
		}
	default:
		return nil, fmt.Errorf("%w: unknown consistency check type %q", ErrInvalidRequest, req.Type)
	}

	var check ConsistencyCheck
	if err := c.do(ctx, http.MethodPost, "/consistency-checks", req, &check); err != nil {
		return nil, err
	}
	return &check, nil
}

// ConsistencyCheck fetches a consistency check.
func (c *Client) ConsistencyCheck(ctx context.Context, id uuid.UUID) (*ConsistencyCheck, error) {
	var check ConsistencyCheck
	if err := c.do(ctx, http.MethodGet, "/consistency-checks/"+id.String(), nil, &check); err != nil {
		return nil, err
	}
	return &check, nil
}

// do sends in (if not nil) as JSON and decodes a 2xx JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	url := c.baseURL + path

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("creating %s %s request: %w", method, url, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("Calling data vault service", logger.String("method", method), logger.String("url", url))
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Method: method, URL: url, Body: string(data)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, url, err)
	}
	return nil
}
