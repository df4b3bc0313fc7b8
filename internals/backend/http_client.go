package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sekolahku_dashboard/internals/helpers/pick"
)

const DefaultTimeout = 15 * time.Second

// HTTPClient: backend REST via fiber Agent (fasthttp).
type HTTPClient struct {
	baseURL string
	token   string
	timeout time.Duration
	log     *zap.Logger
}

type HTTPOption func(*HTTPClient)

func WithTimeout(d time.Duration) HTTPOption {
	return func(c *HTTPClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(l *zap.Logger) HTTPOption {
	return func(c *HTTPClient) {
		if l != nil {
			c.log = l
		}
	}
}

func NewHTTPClient(baseURL string, opts ...HTTPOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithBearer: salinan client dengan token user (diteruskan dari request).
func (c *HTTPClient) WithBearer(token string) *HTTPClient {
	cp := *c
	cp.token = token
	return &cp
}

func (c *HTTPClient) url(resource, id string, q Query) string {
	u := c.baseURL + "/" + strings.Trim(resource, "/")
	if id != "" {
		u += "/" + url.PathEscape(id)
	}
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

func (c *HTTPClient) effectiveTimeout(ctx context.Context) time.Duration {
	t := c.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < t {
			t = left
		}
	}
	return t
}

// do mengirim request dan decode body JSON. Status >= 400 → *APIError.
func (c *HTTPClient) do(ctx context.Context, method, uri string, body any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timeout := c.effectiveTimeout(ctx)
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	a.Timeout(timeout)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if c.token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	if body != nil {
		a.JSONEncoder(sonic.Marshal).JSON(body)
	}
	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	start := time.Now()
	code, raw, errs := a.Bytes()
	c.log.Debug("backend request",
		zap.String("method", method),
		zap.String("uri", uri),
		zap.Int("status", code),
		zap.Duration("latency", time.Since(start)),
	)
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, errs[0])
	}

	var decoded any
	if len(strings.TrimSpace(string(raw))) > 0 {
		if err := sonic.Unmarshal(raw, &decoded); err != nil {
			if code >= http.StatusBadRequest {
				return nil, &APIError{Status: code, Message: strings.TrimSpace(string(raw))}
			}
			return nil, fmt.Errorf("decode response %s %s: %w", method, uri, err)
		}
	}

	if code >= http.StatusBadRequest {
		return nil, ParseError(code, decoded)
	}
	// sebagian endpoint membalas 200 dengan success=false
	if m, ok := decoded.(map[string]any); ok {
		if v, has := m["success"]; has && !pick.ToBool(v) {
			return nil, ParseError(code, decoded)
		}
	}
	return decoded, nil
}

func (c *HTTPClient) List(ctx context.Context, resource string, q Query) (any, error) {
	decoded, err := c.do(ctx, fiber.MethodGet, c.url(resource, "", q), nil)
	if err != nil {
		return nil, err
	}
	return pick.Unwrap(decoded), nil
}

func (c *HTTPClient) Create(ctx context.Context, resource string, payload map[string]any) (*Result, error) {
	decoded, err := c.do(ctx, fiber.MethodPost, c.url(resource, "", nil), payload)
	if err != nil {
		return nil, err
	}
	return toResult(decoded), nil
}

func (c *HTTPClient) Update(ctx context.Context, resource, id string, payload map[string]any) (*Result, error) {
	decoded, err := c.do(ctx, fiber.MethodPut, c.url(resource, id, nil), payload)
	if err != nil {
		return nil, err
	}
	return toResult(decoded), nil
}

func (c *HTTPClient) Delete(ctx context.Context, resource, id string) (*Result, error) {
	decoded, err := c.do(ctx, fiber.MethodDelete, c.url(resource, id, nil), nil)
	if err != nil {
		return nil, err
	}
	return toResult(decoded), nil
}

func toResult(decoded any) *Result {
	m, ok := decoded.(map[string]any)
	if !ok {
		return &Result{Success: true, Data: decoded}
	}
	if _, env := m["success"]; !env {
		return &Result{Success: true, Data: decoded}
	}
	return &Result{
		Success: pick.ToBool(m["success"]),
		Message: pick.String(m, "message"),
		Data:    m["data"],
		Errors:  parseFieldErrors(m["errors"]),
	}
}
