package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/priyanshu-naveen/Coffee-Shop-Prediction/logging"
	"github.com/priyanshu-naveen/Coffee-Shop-Prediction/ml"
)

type handlers struct {
	predictor *ml.Predictor
	logger    *zap.Logger
}

type predictResponse struct {
	Revenue   float64          `json:"revenue"`
	Formatted string           `json:"formatted"`
	Insight   string           `json:"insight"`
	Features  ml.FeatureRecord `json:"features"`
	Cached    bool             `json:"cached"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func RegisterHandlers(mux *http.ServeMux, predictor *ml.Predictor, logger *zap.Logger) {
	h := &handlers{predictor: predictor, logger: logger}

	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /predict", h.handleFormPredict)

	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/schema", handleSchema)
	mux.HandleFunc("POST /api/predict", h.handlePredict)
}

func (h *handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"model_loaded": h.predictor.Loader().Loaded(),
	})
}

func handleSchema(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"fields":   ml.Schema(),
		"defaults": ml.DefaultFeatureRecord(),
	})
}

// handlePredict accepts the six fields as JSON numbers or strings; missing
// fields take their defaults and everything is clamped.
func (h *handlers) handlePredict(w http.ResponseWriter, r *http.Request) {
	values := map[string]interface{}{}
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return
		}
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	record := ml.CollectFeatures(func(key string) string {
		switch v := values[key].(type) {
		case json.Number:
			return v.String()
		case string:
			return v
		default:
			return ""
		}
	})

	prediction, err := h.predictor.Predict(record)
	if err != nil {
		h.logFailure(r, err)
		respondJSON(w, errorStatus(err), errorResponse{Error: err.Error(), Kind: ml.ErrorKind(err)})
		return
	}

	respondJSON(w, http.StatusOK, predictResponse{
		Revenue:   prediction.Revenue,
		Formatted: ml.FormatCurrency(prediction.Revenue),
		Insight:   ml.Insight(prediction.Features, prediction.Revenue),
		Features:  prediction.Features,
		Cached:    prediction.Cached,
	})
}

func (h *handlers) logFailure(r *http.Request, err error) {
	h.logger.Warn("prediction failed",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.String("kind", ml.ErrorKind(err)),
		zap.Error(err))
}

func errorStatus(err error) int {
	if errors.Is(err, ml.ErrArtifactMissing) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.L().Warn("encode response", zap.Error(err))
	}
}
