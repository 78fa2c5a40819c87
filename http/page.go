package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/priyanshu-naveen/Coffee-Shop-Prediction/ml"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

const unexpectedErrorMessage = "An unexpected error occurred while loading the model or making a prediction."

type pageData struct {
	Fields []fieldView
	Result *resultView
	Error  string
	Detail string
}

type fieldView struct {
	ml.FeatureSpec
	Value string
}

type resultView struct {
	Revenue string
	Insight string
}

func newPageData(record ml.FeatureRecord) pageData {
	specs := ml.Schema()
	vector := ml.FeatureVector(record)
	fields := make([]fieldView, len(specs))
	for i, spec := range specs {
		fields[i] = fieldView{FeatureSpec: spec, Value: formatValue(vector[i], spec.Integer)}
	}
	return pageData{Fields: fields}
}

func formatValue(v float64, integer bool) string {
	if integer {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (h *handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, newPageData(ml.DefaultFeatureRecord()))
}

// handleFormPredict is the "Predict Daily Revenue" action. Errors are shown
// on the page with the inputs kept, so the form stays usable.
func (h *handlers) handleFormPredict(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderPage(w, r, http.StatusBadRequest, pageData{Error: "could not read the submitted form"})
		return
	}
	record := ml.CollectFeatures(r.PostForm.Get)

	prediction, err := h.predictor.Predict(record)
	data := newPageData(prediction.Features)
	status := http.StatusOK
	switch {
	case err == nil:
		data.Result = &resultView{
			Revenue: ml.FormatCurrency(prediction.Revenue),
			Insight: ml.Insight(prediction.Features, prediction.Revenue),
		}
	case errors.Is(err, ml.ErrArtifactMissing):
		h.logFailure(r, err)
		data.Error = err.Error()
		status = http.StatusServiceUnavailable
	default:
		h.logFailure(r, err)
		data.Error = unexpectedErrorMessage
		data.Detail = err.Error()
		status = http.StatusInternalServerError
	}
	h.renderPage(w, r, status, data)
}

func (h *handlers) renderPage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	if data.Fields == nil {
		data.Fields = newPageData(ml.DefaultFeatureRecord()).Fields
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("render page failed",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
