package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client is a thin PostgREST client for the Supabase backing store.
// Collections are exposed as REST resources under /rest/v1 with
// equality/containment filter predicates and bearer-token auth.
type Client struct {
	http *resty.Client
}

// New creates a client for the given project URL and API key. The key is
// sent both as the apikey header and as the bearer token, the way
// PostgREST expects service-role access.
func New(baseURL, apiKey string) *Client {
	hc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/") + "/rest/v1").
		SetHeader("apikey", apiKey).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)

	return &Client{http: hc}
}

// apiError reports a non-2xx PostgREST response.
type apiError struct {
	Status int
	Body   string
}

func (e *apiError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200]
	}
	return fmt.Sprintf("supabase: status %d: %s", e.Status, body)
}

func decode(data []byte, out interface{}) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// Select runs a filtered read against a collection and decodes the JSON
// array response into out.
func (c *Client) Select(ctx context.Context, table string, query url.Values, out interface{}) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		Get("/" + table)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return &apiError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}
	return decode(resp.Body(), out)
}

// SelectWithCount is Select with an exact total row count, read from the
// Content-Range header PostgREST emits when asked for a count.
func (c *Client) SelectWithCount(ctx context.Context, table string, query url.Values, out interface{}) (int64, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		SetHeader("Prefer", "count=exact").
		Get("/" + table)
	if err != nil {
		return 0, err
	}
	if resp.IsError() {
		return 0, &apiError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}
	if err := decode(resp.Body(), out); err != nil {
		return 0, err
	}
	return parseContentRangeTotal(resp.Header().Get("Content-Range")), nil
}

// Insert creates one row and decodes the returned representation (a JSON
// array with the inserted row) into out.
func (c *Client) Insert(ctx context.Context, table string, payload, out interface{}) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(payload).
		Post("/" + table)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return &apiError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}
	return decode(resp.Body(), out)
}

// Update patches the rows matched by the filter predicates.
func (c *Client) Update(ctx context.Context, table string, filters url.Values, payload interface{}) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(filters).
		SetBody(payload).
		Patch("/" + table)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return &apiError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}
	return nil
}

// RPC calls a server-side procedure with the given arguments and decodes
// its result into out.
func (c *Client) RPC(ctx context.Context, name string, args, out interface{}) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(args).
		Post("/rpc/" + name)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return &apiError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}
	return decode(resp.Body(), out)
}

// parseContentRangeTotal extracts the total from a "0-14/57" range header.
// Returns 0 when the header is absent or the total is unknown ("*").
func parseContentRangeTotal(header string) int64 {
	idx := strings.LastIndex(header, "/")
	if idx < 0 {
		return 0
	}
	total, err := strconv.ParseInt(header[idx+1:], 10, 64)
	if err != nil {
		return 0
	}
	return total
}
