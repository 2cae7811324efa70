package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"carprice/catalog"
	"carprice/ml"
	"carprice/predict"
	"carprice/pricing"
	"go.uber.org/zap"
)

type fakeModel struct {
	price float64
	err   error
	calls int
}

func (f *fakeModel) Predict(ctx context.Context, features ml.FeatureVector) (float64, error) {
	f.calls++
	return f.price, f.err
}

func newTestServer(t *testing.T, model ml.Regressor) *Server {
	t.Helper()
	cat, err := catalog.New("test", []string{"Maruti", "Hyundai"})
	if err != nil {
		t.Fatal(err)
	}
	converter, err := pricing.NewConverter(pricing.DefaultRate)
	if err != nil {
		t.Fatal(err)
	}
	svc, err := predict.NewService(model, cat, converter, nil)
	if err != nil {
		t.Fatal(err)
	}
	server, err := NewServer(DefaultServerConfig(), svc, nil)
	if err != nil {
		t.Fatal(err)
	}
	return server
}

func submission() url.Values {
	return url.Values{
		"year":         {"2015"},
		"mileage":      {"20 kmpl"},
		"max_power":    {"85 bhp"},
		"engine":       {"1200 cc"},
		"brand":        {"Maruti"},
		"transmission": {"1"},
		"seller_type":  {"1"},
		"fuel":         {"2"},
		"owner":        {"1"},
		"km_driven":    {"40,000 km"},
		"seats":        {"5"},
	}
}

func postForm(server *Server, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(handleHealth)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	expected := `{"status":"ok"}`
	if rr.Body.String() != expected+"\n" && rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestGetRendersEmptyForm(t *testing.T) {
	server := newTestServer(t, &fakeModel{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`<option value="Maruti">Maruti</option>`, `<option value="Hyundai">Hyundai</option>`, "Trustmark Dealer", "Test Drive Car"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, "Predicted Price") || strings.Contains(body, `class="error"`) {
		t.Fatal("empty form must not show a result or an error")
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}

func TestPostRendersPrediction(t *testing.T) {
	server := newTestServer(t, &fakeModel{price: 1000000})

	w := postForm(server, submission())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Predicted Price: $12,000.00") {
		t.Fatalf("missing prediction in page: %s", body)
	}
	if strings.Contains(body, `class="error"`) {
		t.Fatal("successful submission must not show an error")
	}
	if !strings.Contains(body, `<option value="Maruti" selected>`) {
		t.Fatal("submitted brand should stay selected")
	}
}

func TestPostRendersInputError(t *testing.T) {
	model := &fakeModel{price: 1}
	server := newTestServer(t, model)

	form := submission()
	form.Set("year", "abc")
	w := postForm(server, form)

	body := w.Body.String()
	if !strings.Contains(body, "Input error: year") {
		t.Fatalf("missing input error: %s", body)
	}
	if strings.Contains(body, "Predicted Price") {
		t.Fatal("error page must not show a prediction")
	}
	if model.calls != 0 {
		t.Fatal("model must not be called for bad input")
	}
}

func TestPostRendersUnexpectedError(t *testing.T) {
	server := newTestServer(t, &fakeModel{err: errors.New("model offline")})

	body := postForm(server, submission()).Body.String()
	if !strings.Contains(body, "An unexpected error occurred") || !strings.Contains(body, "model offline") {
		t.Fatalf("missing unexpected error: %s", body)
	}
}

func TestAPIPredict(t *testing.T) {
	server := newTestServer(t, &fakeModel{price: 1000000})

	payload := `{"year": 2015, "mileage": "20 kmpl", "max_power": "85 bhp", "engine": "1200 cc",
		"brand": "Maruti", "transmission": 1, "seller_type": 1, "fuel": 2, "owner": 1,
		"km_driven": "40,000 km", "seats": 5}`
	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(payload))
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp predictResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.PriceUSD != "12000.00" || resp.PriceINR != 1000000 || resp.CatalogVersion != "test" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAPIPredictErrorKinds(t *testing.T) {
	cases := []struct {
		name   string
		model  *fakeModel
		brand  string
		status int
		kind   string
	}{
		{"unknown brand", &fakeModel{price: 1}, "Tesla", http.StatusBadRequest, "input"},
		{"model failure", &fakeModel{err: errors.New("boom")}, "Maruti", http.StatusInternalServerError, "unexpected"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := newTestServer(t, tc.model)
			fields := map[string]string{}
			for k, v := range submission() {
				fields[k] = v[0]
			}
			fields["brand"] = tc.brand
			payload, _ := json.Marshal(fields)

			req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(string(payload)))
			w := httptest.NewRecorder()
			server.Handler().ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Kind != tc.kind {
				t.Fatalf("expected kind %s, got %s", tc.kind, resp.Kind)
			}
		})
	}
}

func TestAPIBrands(t *testing.T) {
	server := newTestServer(t, &fakeModel{})

	req := httptest.NewRequest(http.MethodGet, "/api/brands", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	var payload struct {
		Version string   `json:"version"`
		Brands  []string `json:"brands"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload.Version != "test" || len(payload.Brands) != 2 || payload.Brands[0] != "Maruti" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := RecoveryMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
