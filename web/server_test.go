package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeSource serves a canned molfile for one known name.
type fakeSource struct {
	known   string
	molfile string
}

func (f *fakeSource) Molfile(ctx context.Context, identifier string) (string, error) {
	if identifier != f.known {
		return "", fmt.Errorf("unknown structure %q", identifier)
	}
	return f.molfile, nil
}

const ethaneMolfile = "\n  test\n\n  2  1  0  0  0  0  0  0  0  0999 V2000\n" +
	"    0.0000    0.0000    0.0000 C   0  0\n" +
	"    1.0000    0.0000    0.0000 C   0  0\n" +
	"  1  2  1  0\nM  END\n"

func newTestServer(rps float64, burst int) *httptest.Server {
	s := NewServer(&fakeSource{known: "ethane", molfile: ethaneMolfile}, rps, burst)
	return httptest.NewServer(s.Handler())
}

func TestRenderEndpoint(t *testing.T) {
	ts := newTestServer(100, 100)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/render?name=ethane")
	if err != nil {
		t.Fatalf("GET /render: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, wanted 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "C─C") {
		t.Errorf("body = %q, wanted it to contain C─C", body)
	}
}

func TestRenderEndpointASCII(t *testing.T) {
	ts := newTestServer(100, 100)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/render?name=ethane&ascii=1")
	if err != nil {
		t.Fatalf("GET /render: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "C-C") {
		t.Errorf("body = %q, wanted it to contain C-C", body)
	}
}

func TestRenderEndpointRequiresName(t *testing.T) {
	ts := newTestServer(100, 100)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/render")
	if err != nil {
		t.Fatalf("GET /render: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, wanted 400", resp.StatusCode)
	}
}

func TestRenderEndpointUnknownName(t *testing.T) {
	ts := newTestServer(100, 100)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/render?name=unobtainium")
	if err != nil {
		t.Fatalf("GET /render: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, wanted 404", resp.StatusCode)
	}
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(0.1, 1)
	defer ts.Close()

	first, err := http.Get(ts.URL + "/render?name=ethane")
	if err != nil {
		t.Fatal(err)
	}
	first.Body.Close()
	if first.StatusCode != http.StatusOK {
		t.Fatalf("first request status = %d, wanted 200", first.StatusCode)
	}

	second, err := http.Get(ts.URL + "/render?name=ethane")
	if err != nil {
		t.Fatal(err)
	}
	second.Body.Close()
	if second.StatusCode != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, wanted 429", second.StatusCode)
	}
}

func TestHealthBypassesRateLimit(t *testing.T) {
	ts := newTestServer(0.1, 1)
	defer ts.Close()

	// exhaust the client's budget
	resp, err := http.Get(ts.URL + "/render?name=ethane")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	for i := 0; i < 3; i++ {
		resp, err := http.Get(ts.URL + "/healthz")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("health check %d status = %d, wanted 200", i, resp.StatusCode)
		}
	}
}
