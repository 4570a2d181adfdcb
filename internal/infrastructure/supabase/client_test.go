package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// newTestServer records every request and replies with the given status
// and body.
func newTestServer(t *testing.T, status int, body string, extraHeader http.Header) (*Client, *[]capturedRequest) {
	t.Helper()

	var requests []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf []byte
		if r.Body != nil {
			buf = make([]byte, r.ContentLength)
			r.Body.Read(buf)
		}
		requests = append(requests, capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   buf,
		})
		for k, vs := range extraHeader {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return New(srv.URL, "service-key"), &requests
}

func TestClientAuthHeaders(t *testing.T) {
	client, requests := newTestServer(t, 200, "[]", nil)

	if err := client.Select(context.Background(), "sales", url.Values{}, nil); err != nil {
		t.Fatalf("select: %v", err)
	}

	req := (*requests)[0]
	if got := req.Header.Get("apikey"); got != "service-key" {
		t.Errorf("apikey header %q", got)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer service-key" {
		t.Errorf("authorization header %q", got)
	}
}

func TestClientSelectBuildsRestPath(t *testing.T) {
	client, requests := newTestServer(t, 200, `[{"id":"s1"}]`, nil)

	query := url.Values{}
	query.Set("status", "eq.finalizada")
	query.Set("printed", "is.false")

	var rows []struct {
		ID string `json:"id"`
	}
	if err := client.Select(context.Background(), "sales", query, &rows); err != nil {
		t.Fatalf("select: %v", err)
	}

	req := (*requests)[0]
	if req.Path != "/rest/v1/sales" {
		t.Errorf("path %q, want /rest/v1/sales", req.Path)
	}
	if req.Query.Get("status") != "eq.finalizada" || req.Query.Get("printed") != "is.false" {
		t.Errorf("filters not forwarded: %v", req.Query)
	}
	if len(rows) != 1 || rows[0].ID != "s1" {
		t.Errorf("decoded rows %v", rows)
	}
}

func TestClientSelectWithCount(t *testing.T) {
	header := http.Header{}
	header.Set("Content-Range", "0-14/57")
	client, requests := newTestServer(t, 200, "[]", header)

	var rows []json.RawMessage
	total, err := client.SelectWithCount(context.Background(), "products", url.Values{}, &rows)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if total != 57 {
		t.Errorf("total %d, want 57", total)
	}
	if got := (*requests)[0].Header.Get("Prefer"); got != "count=exact" {
		t.Errorf("Prefer header %q", got)
	}
}

func TestClientInsertAsksForRepresentation(t *testing.T) {
	client, requests := newTestServer(t, 201, `[{"id":"new-1"}]`, nil)

	var created []struct {
		ID string `json:"id"`
	}
	payload := map[string]float64{"total": 10}
	if err := client.Insert(context.Background(), "sales", payload, &created); err != nil {
		t.Fatalf("insert: %v", err)
	}

	req := (*requests)[0]
	if req.Method != http.MethodPost {
		t.Errorf("method %s", req.Method)
	}
	if got := req.Header.Get("Prefer"); got != "return=representation" {
		t.Errorf("Prefer header %q", got)
	}
	if len(created) != 1 || created[0].ID != "new-1" {
		t.Errorf("representation not decoded: %v", created)
	}
}

func TestClientUpdateScopesByFilter(t *testing.T) {
	client, requests := newTestServer(t, 204, "", nil)

	filters := url.Values{}
	filters.Set("id", "eq.sale-1")
	if err := client.Update(context.Background(), "sales", filters, map[string]bool{"printed": true}); err != nil {
		t.Fatalf("update: %v", err)
	}

	req := (*requests)[0]
	if req.Method != http.MethodPatch {
		t.Errorf("method %s", req.Method)
	}
	if req.Query.Get("id") != "eq.sale-1" {
		t.Errorf("update not scoped to the sale: %v", req.Query)
	}
}

func TestClientRPCPath(t *testing.T) {
	client, requests := newTestServer(t, 200, `{"id":"s1"}`, nil)

	var out struct {
		ID string `json:"id"`
	}
	if err := client.RPC(context.Background(), "process_sale", map[string]int{"x": 1}, &out); err != nil {
		t.Fatalf("rpc: %v", err)
	}

	req := (*requests)[0]
	if req.Path != "/rest/v1/rpc/process_sale" {
		t.Errorf("path %q", req.Path)
	}
	if req.Method != http.MethodPost {
		t.Errorf("method %s", req.Method)
	}
	if out.ID != "s1" {
		t.Errorf("result not decoded: %+v", out)
	}
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	client, _ := newTestServer(t, 401, `{"message":"JWT expired"}`, nil)

	err := client.Select(context.Background(), "sales", url.Values{}, nil)
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestParseContentRangeTotal(t *testing.T) {
	tests := []struct {
		header string
		want   int64
	}{
		{"0-14/57", 57},
		{"*/0", 0},
		{"0-4/*", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := parseContentRangeTotal(tt.header); got != tt.want {
			t.Errorf("parseContentRangeTotal(%q) = %d, want %d", tt.header, got, tt.want)
		}
	}
}
