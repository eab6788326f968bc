package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/hassetower/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := newLogger(io.Discard, LogInfo)
	srv := httptest.NewServer(newServer(pipeline.NewRunner(nil, nil, logger), logger, 0).routes())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServeHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
	if _, err := uuid.Parse(resp.Header.Get(requestIDHeader)); err != nil {
		t.Errorf("missing request ID: %v", err)
	}
}

func TestServeDiagramCSV(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/v1/diagram?format=dot", "text/csv", rankingsCSV)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := resp.Header.Get("X-Hasse-Edges"); got != "2" {
		t.Errorf("X-Hasse-Edges = %q, want 2", got)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"(2, 0)" -> "(1, 1)";`) {
		t.Errorf("unexpected DOT:\n%s", body)
	}
}

func TestServeDiagramJSONVectors(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/v1/diagram?format=json", "application/json; charset=utf-8",
		`{"x": [1, 0], "y": [0, 1]}`)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	var doc struct {
		Nodes []any `json:"nodes"`
		Edges []any `json:"edges"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Nodes) != 2 || len(doc.Edges) != 1 {
		t.Errorf("got %d nodes, %d edges; want 2 and 1", len(doc.Nodes), len(doc.Edges))
	}
}

func TestServeTiers(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/v1/tiers?verify=true", "text/csv", rankingsCSV)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body tiersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Tiers) != 3 || body.Tiers[0][0].Names[0] != "alice" {
		t.Errorf("tiers = %+v", body.Tiers)
	}
	if len(body.Edges) != 2 || body.Edges[0] != [2]string{"(2, 0)", "(1, 1)"} {
		t.Errorf("edges = %v", body.Edges)
	}
}

func TestServeErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name        string
		path        string
		contentType string
		body        string
		status      int
		code        string
	}{
		{"bad format", "/v1/diagram?format=pdf", "text/csv", rankingsCSV, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad content type", "/v1/diagram", "image/png", "x", http.StatusBadRequest, "INVALID_FORMAT"},
		{"ragged csv", "/v1/diagram?format=dot", "text/csv", "h,a,b\n1,x,y\n2,z\n", http.StatusBadRequest, "INVALID_INPUT"},
		{"length mismatch", "/v1/tiers", "application/json", `{"a": [1], "b": [1, 2]}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"negative count", "/v1/tiers", "application/json", `{"a": [-1]}`, http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+tt.path, tt.contentType, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Error != tt.code {
				t.Errorf("error code = %q, want %q (message %q)", body.Error, tt.code, body.Message)
			}
			if body.RequestID == "" {
				t.Error("error response has no request ID")
			}
		})
	}
}

func TestServeKeepsClientRequestID(t *testing.T) {
	srv := newTestServer(t)
	id := uuid.NewString()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set(requestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get(requestIDHeader); got != id {
		t.Errorf("request ID = %q, want %q", got, id)
	}
}
