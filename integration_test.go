package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/itt-ustutt/quantity/pkg/quantity"
	"github.com/itt-ustutt/quantity/pkg/quantity/calc"
	"github.com/itt-ustutt/quantity/pkg/quantity/dashboard"
)

// TestIntegrationSuite exercises the whole stack: expression evaluation,
// formatting, the unit parser round trip and the dashboard API.
func TestIntegrationSuite(t *testing.T) {
	t.Run("EndToEndCalculation", testEndToEndCalculation)
	t.Run("FormatParseRoundTrip", testFormatParseRoundTrip)
	t.Run("ExpressionErrors", testExpressionErrors)
	t.Run("DashboardAPI", testDashboardAPI)
	t.Run("ConcurrentEvaluations", testConcurrentEvaluations)
}

// testEndToEndCalculation runs the ideal gas law through the calculator
// and checks magnitude, unit vector and formatted output.
func testEndToEndCalculation(t *testing.T) {
	e := calc.New()

	q, err := e.Evaluate("75 mol * RGAS * 298.15 K / (1.5 m^3)")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if q.Unit() != quantity.Pascal.Unit() {
		t.Errorf("unit = %v, want the pressure vector", q.Unit())
	}

	s, ok := q.Value().(quantity.Scalar)
	if !ok {
		t.Fatalf("magnitude is %T", q.Value())
	}
	want := 75 * 8.31446261815324 * 298.15 / 1.5
	if math.Abs(float64(s)-want) > 1e-6 {
		t.Errorf("value = %v, want %v", float64(s), want)
	}

	out := q.String()
	if !strings.HasSuffix(out, " kPa") {
		t.Errorf("formatted = %q, want a kPa rendering", out)
	}
}

// testFormatParseRoundTrip feeds formatter output back through Parse and
// checks that the quantity survives.
func testFormatParseRoundTrip(t *testing.T) {
	e := calc.New()

	inputs := []string{
		"1 Hz",
		"2.5 kPa",
		"sqrt(2 * 9.81 m/s^2 * 10 m)",
		"25 °C",
		"6 J / 2 s",
	}

	for _, input := range inputs {
		q, err := e.Evaluate(input)
		if err != nil {
			t.Errorf("Evaluate(%q): %v", input, err)
			continue
		}

		back, err := quantity.Parse(q.String())
		if err != nil {
			t.Errorf("Parse(%q): %v", q.String(), err)
			continue
		}
		if back.Unit() != q.Unit() {
			t.Errorf("%q: round trip vector %v != %v", input, back.Unit(), q.Unit())
		}

		a := q.Value().(quantity.Scalar)
		b := back.Value().(quantity.Scalar)
		if math.Abs(float64(a-b)) > 1e-9*math.Abs(float64(a)) {
			t.Errorf("%q: round trip value %v != %v", input, b, a)
		}
	}
}

func testExpressionErrors(t *testing.T) {
	testCases := []struct {
		name       string
		expression string
		want       error
	}{
		{"dimension mismatch", "1 m + 1 s", quantity.ErrDimensionMismatch},
		{"non-integer root", "sqrt(1 m)", quantity.ErrNonIntegerRoot},
		{"unknown symbol", "3 xyzzy", quantity.ErrUnknownSymbol},
		{"affine misuse", "2 °C^2", quantity.ErrAffineUnitMisuse},
		{"syntax", "1 + + 2", calc.ErrSyntax},
	}

	e := calc.New()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Evaluate(tc.expression)
			if !errors.Is(err, tc.want) {
				t.Errorf("Evaluate(%q): err = %v, want %v", tc.expression, err, tc.want)
			}
		})
	}
}

// testDashboardAPI checks every HTTP endpoint returns the right status
// and, for the API routes, well-formed JSON.
func testDashboardAPI(t *testing.T) {
	s := dashboard.NewServer(0)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	testCases := []struct {
		name           string
		endpoint       string
		method         string
		body           string
		expectedStatus int
	}{
		{"dashboard root", "/", http.MethodGet, "", http.StatusOK},
		{"eval API", "/api/eval", http.MethodPost, `{"expression": "1 Hz"}`, http.StatusOK},
		{"eval API failure", "/api/eval", http.MethodPost, `{"expression": "1 m + 1 s"}`, http.StatusUnprocessableEntity},
		{"catalog API", "/api/catalog", http.MethodGet, "", http.StatusOK},
		{"history API", "/api/history", http.MethodGet, "", http.StatusOK},
		{"metrics", "/metrics", http.MethodGet, "", http.StatusOK},
		{"non-existent endpoint", "/api/nonexistent", http.MethodGet, "", http.StatusNotFound},
	}

	client := ts.Client()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var body io.Reader
			if tc.body != "" {
				body = strings.NewReader(tc.body)
			}
			req, err := http.NewRequest(tc.method, ts.URL+tc.endpoint, body)
			if err != nil {
				t.Fatalf("build request: %v", err)
			}

			resp, err := client.Do(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.expectedStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.expectedStatus)
			}

			if strings.HasPrefix(tc.endpoint, "/api/") && resp.StatusCode != http.StatusNotFound {
				raw, err := io.ReadAll(resp.Body)
				if err != nil {
					t.Fatalf("read body: %v", err)
				}
				var v interface{}
				if err := json.Unmarshal(raw, &v); err != nil {
					t.Errorf("invalid JSON response: %v\n%s", err, raw)
				}
			}
		})
	}
}

// testConcurrentEvaluations hammers one server from many goroutines; the
// history buffer and metrics must stay consistent.
func testConcurrentEvaluations(t *testing.T) {
	s := dashboard.NewServer(0)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	var wg sync.WaitGroup
	numWorkers := 10
	evalsPerWorker := 20

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < evalsPerWorker; j++ {
				expr := fmt.Sprintf(`{"expression": "%d m + %d m"}`, id, j)
				resp, err := http.Post(ts.URL+"/api/eval", "application/json", strings.NewReader(expr))
				if err != nil {
					t.Errorf("worker %d: %v", id, err)
					return
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					t.Errorf("worker %d: status %d", id, resp.StatusCode)
				}
			}
		}(i)
	}
	wg.Wait()

	resp, err := http.Get(ts.URL + "/api/history")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var history []dashboard.Evaluation
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history) != numWorkers*evalsPerWorker {
		t.Errorf("history length = %d, want %d", len(history), numWorkers*evalsPerWorker)
	}
}
