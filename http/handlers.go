package http

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"carprice/predict"
	"go.uber.org/zap"
)

//go:embed templates/index.html
var templateFS embed.FS

type option struct {
	Value string
	Label string
}

var (
	transmissionOptions = []option{{"1", "Manual"}, {"2", "Automatic"}}
	sellerTypeOptions   = []option{{"1", "Individual"}, {"2", "Dealer"}, {"3", "Trustmark Dealer"}}
	fuelOptions         = []option{{"1", "Diesel"}, {"2", "Petrol"}, {"3", "LPG"}, {"4", "CNG"}}
	ownerOptions        = []option{
		{"1", "First Owner"},
		{"2", "Second Owner"},
		{"3", "Third Owner"},
		{"4", "Fourth & Above Owner"},
		{"5", "Test Drive Car"},
	}
)

type pageData struct {
	Brands        []string
	Transmissions []option
	SellerTypes   []option
	Fuels         []option
	Owners        []option
	Values        map[string]string
	Prediction    string
	Error         string
}

type predictResponse struct {
	PriceINR       float64 `json:"price_inr"`
	PriceUSD       string  `json:"price_usd"`
	Display        string  `json:"display"`
	CatalogVersion string  `json:"catalog_version"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Handler serves the form page and the JSON API over one predict.Service.
type Handler struct {
	svc    *predict.Service
	logger *zap.Logger
	page   *template.Template
}

func NewHandler(svc *predict.Service, logger *zap.Logger) (*Handler, error) {
	if svc == nil {
		return nil, errors.New("predict service is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Handler{svc: svc, logger: logger, page: page}, nil
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleForm)
	mux.HandleFunc("POST /{$}", h.handleSubmit)
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("GET /api/brands", h.handleBrands)
	mux.HandleFunc("POST /api/predict", h.handlePredict)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.newPage(nil))
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		data := h.newPage(nil)
		data.Error = predict.Message(&predict.InputError{Field: "form", Reason: "could not read submission", Err: err})
		h.render(w, r, data)
		return
	}

	data := h.newPage(r.PostForm)
	result, err := h.svc.Estimate(r.Context(), r.PostForm)
	if err != nil {
		data.Error = predict.Message(err)
	} else {
		data.Prediction = result.Display
	}
	h.render(w, r, data)
}

func (h *Handler) handleBrands(w http.ResponseWriter, r *http.Request) {
	cat := h.svc.Catalog()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"version": cat.Version(),
		"brands":  cat.Brands(),
	})
}

func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	values, err := decodeFields(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error(), Kind: "input"})
		return
	}

	result, err := h.svc.Estimate(r.Context(), values)
	if err != nil {
		status := http.StatusInternalServerError
		if predict.IsInputError(err) {
			status = http.StatusBadRequest
		}
		respondJSON(w, status, errorResponse{Error: err.Error(), Kind: predict.Kind(err)})
		return
	}

	respondJSON(w, http.StatusOK, predictResponse{
		PriceINR:       result.PriceINR,
		PriceUSD:       result.Amount,
		Display:        "$" + result.Display,
		CatalogVersion: h.svc.Catalog().Version(),
	})
}

// decodeFields accepts a flat JSON object; numbers keep their literal text so
// they go through the same parsing as form strings.
func decodeFields(r *http.Request) (url.Values, error) {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var body map[string]interface{}
	if err := decoder.Decode(&body); err != nil {
		return nil, err
	}
	values := make(url.Values, len(body))
	for field, raw := range body {
		switch v := raw.(type) {
		case string:
			values.Set(field, v)
		case json.Number:
			values.Set(field, v.String())
		case nil:
		default:
			return nil, fmt.Errorf("field %s must be a string or number", field)
		}
	}
	return values, nil
}

func (h *Handler) newPage(submitted url.Values) pageData {
	values := make(map[string]string, len(submitted))
	for _, field := range predict.Fields() {
		if v := submitted.Get(field); v != "" {
			values[field] = v
		}
	}
	return pageData{
		Brands:        h.svc.Catalog().Brands(),
		Transmissions: transmissionOptions,
		SellerTypes:   sellerTypeOptions,
		Fuels:         fuelOptions,
		Owners:        ownerOptions,
		Values:        values,
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data pageData) {
	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		h.logger.Error("render page", zap.String("request_id", GetRequestID(r.Context())), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
