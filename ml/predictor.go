package ml

import (
	"errors"
	"fmt"
	"math"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/priyanshu-naveen/Coffee-Shop-Prediction/monitoring"
)

// Prediction is one estimate together with the clamped inputs it was made from.
type Prediction struct {
	Features FeatureRecord `json:"features"`
	Revenue  float64       `json:"revenue"`
	Cached   bool          `json:"cached"`
}

// Predict applies model to the ordered feature vector of record and returns
// the first output, floored at zero.
func Predict(model Model, record FeatureRecord) (revenue float64, err error) {
	if model == nil {
		return 0, &InferenceError{Op: "predict", Err: errors.New("model not loaded")}
	}
	defer func() {
		if r := recover(); r != nil {
			revenue = 0
			err = &InferenceError{Op: "predict", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	outputs, err := model.Predict(FeatureVector(record.Clamp()))
	if err != nil {
		return 0, inferenceError("predict", err)
	}
	if len(outputs) == 0 {
		return 0, &InferenceError{Op: "predict", Err: errors.New("model returned no output")}
	}
	value := outputs[0]
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &InferenceError{Op: "predict", Err: fmt.Errorf("non-finite model output %v", value)}
	}
	return math.Max(0, value), nil
}

// Predictor couples the cached model load with a small result cache.
type Predictor struct {
	loader *ModelLoader
	cache  *lru.Cache[FeatureRecord, float64]
}

// NewPredictor builds a Predictor; cacheSize <= 0 disables result caching.
func NewPredictor(loader *ModelLoader, cacheSize int) (*Predictor, error) {
	p := &Predictor{loader: loader}
	if cacheSize > 0 {
		cache, err := lru.New[FeatureRecord, float64](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create prediction cache: %w", err)
		}
		p.cache = cache
	}
	return p, nil
}

func (p *Predictor) Loader() *ModelLoader {
	return p.loader
}

func (p *Predictor) Predict(record FeatureRecord) (Prediction, error) {
	record = record.Clamp()
	start := time.Now()

	if p.cache != nil {
		if revenue, ok := p.cache.Get(record); ok {
			monitoring.ObserveCacheHit()
			monitoring.ObservePrediction(time.Since(start), "")
			return Prediction{Features: record, Revenue: revenue, Cached: true}, nil
		}
	}

	model, err := p.loader.Load()
	if err != nil {
		monitoring.ObservePrediction(time.Since(start), ErrorKind(err))
		return Prediction{Features: record}, err
	}
	revenue, err := Predict(model, record)
	monitoring.ObservePrediction(time.Since(start), ErrorKind(err))
	if err != nil {
		return Prediction{Features: record}, err
	}

	if p.cache != nil {
		p.cache.Add(record, revenue)
	}
	return Prediction{Features: record, Revenue: revenue}, nil
}
