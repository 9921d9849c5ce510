package vault

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// HTTPDoer abstracts HTTP calls for testability
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns the production transport with the given timeout.
func NewHTTPClient(timeout time.Duration) HTTPDoer {
	return &http.Client{Timeout: timeout}
}

// RecordedRequest is a request seen by MockHTTPDoer.
type RecordedRequest struct {
	Method      string
	URL         string
	ContentType string
	Body        string
}

// MockHTTPDoer simulates HTTP responses for testing. Responses are keyed by
// method and URL, e.g. "POST http://localhost/imports".
type MockHTTPDoer struct {
	mu        sync.Mutex
	responses map[string]mockResponse
	errors    map[string]error
	requests  []RecordedRequest
}

type mockResponse struct {
	status int
	body   string
}

// NewMockHTTPDoer creates a mock HTTP transport
func NewMockHTTPDoer() *MockHTTPDoer {
	return &MockHTTPDoer{
		responses: make(map[string]mockResponse),
		errors:    make(map[string]error),
	}
}

// AddResponse registers a mock response for a method and URL
func (m *MockHTTPDoer) AddResponse(method, urlStr string, statusCode int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[mockKey(method, urlStr)] = mockResponse{status: statusCode, body: body}
}

// AddError registers a transport error for a method and URL
func (m *MockHTTPDoer) AddError(method, urlStr string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[mockKey(method, urlStr)] = err
}

// Requests returns the requests received so far, in order.
func (m *MockHTTPDoer) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecordedRequest(nil), m.requests...)
}

func (m *MockHTTPDoer) Do(req *http.Request) (*http.Response, error) {
	rec := RecordedRequest{
		Method:      req.Method,
		URL:         req.URL.String(),
		ContentType: req.Header.Get("Content-Type"),
	}
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, fmt.Errorf("mock: reading request body: %w", err)
		}
		rec.Body = string(data)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, rec)

	key := mockKey(req.Method, rec.URL)
	if err, ok := m.errors[key]; ok {
		return nil, err
	}
	resp, ok := m.responses[key]
	if !ok {
		// Return 404 for unknown URLs
		resp = mockResponse{status: http.StatusNotFound, body: "Not Found"}
	}
	return &http.Response{
		StatusCode: resp.status,
		Status:     fmt.Sprintf("%d %s", resp.status, http.StatusText(resp.status)),
		Body:       io.NopCloser(strings.NewReader(resp.body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Request:    req,
	}, nil
}

func mockKey(method, urlStr string) string {
	return method + " " + urlStr
}
