package requester

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrEmptyBody        = errors.New("empty response body")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Request struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    []byte
}

type Response struct {
	StatusCode int
	Body       []byte
}

// Requester performs outbound calls to backend services.
type Requester interface {
	// Send returns whatever the backend answered; only transport failures are errors.
	Send(ctx context.Context, req Request) (*Response, error)
	// SendTyped requires a 2xx answer and decodes its JSON body into out.
	SendTyped(ctx context.Context, req Request, out any) error
}

type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUnexpectedStatus, e.Code)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// Decode applies the SendTyped contract to the outcome of a raw send. The
// body must be a JSON value that satisfies the validate tags of out.
func Decode(resp *Response, err error, out any) error {
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: resp.Body}
	}
	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return fmt.Errorf("decode response: %w", ErrEmptyBody)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := validateValue(reflect.ValueOf(out)); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// validateValue checks a decoded struct, or every struct of a decoded slice.
func validateValue(v reflect.Value) error {
	v = reflect.Indirect(v)
	switch v.Kind() {
	case reflect.Struct:
		return validate.Struct(v.Interface())
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			if err := validateValue(v.Index(i)); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

// SendTyped is the generic form of Requester.SendTyped.
func SendTyped[T any](ctx context.Context, r Requester, req Request) (T, error) {
	var out T
	if err := r.SendTyped(ctx, req, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// JSON builds a request body, returning nil for a nil payload.
func JSON(payload any) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return data, nil
}

type HTTPRequester struct {
	client *http.Client
}

// NewHTTPRequester builds a net/http backed Requester. A zero timeout keeps
// the transport default.
func NewHTTPRequester(timeout time.Duration) *HTTPRequester {
	return &HTTPRequester{client: &http.Client{Timeout: timeout}}
}

func (r *HTTPRequester) Send(ctx context.Context, req Request) (*Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", req.Method, req.URL, err)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if len(req.Body) > 0 && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send %s %s: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response %s %s: %w", req.Method, req.URL, err)
	}
	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

func (r *HTTPRequester) SendTyped(ctx context.Context, req Request, out any) error {
	resp, err := r.Send(ctx, req)
	return Decode(resp, err, out)
}

var _ Requester = (*HTTPRequester)(nil)
