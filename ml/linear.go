package ml

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// LinearModel is an ordinary least squares fit: intercept + coefficients·x.
type LinearModel struct {
	Intercept    float64
	Coefficients []float64
}

type linearArtifact struct {
	artifactHeader
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

func NewLinearModel(intercept float64, coefficients []float64) *LinearModel {
	return &LinearModel{Intercept: intercept, Coefficients: append([]float64(nil), coefficients...)}
}

func (m *LinearModel) Type() string {
	return ModelTypeLinear
}

func (m *LinearModel) Predict(features []float64) ([]float64, error) {
	if len(features) != len(m.Coefficients) {
		return nil, fmt.Errorf("expected %d features, got %d", len(m.Coefficients), len(features))
	}
	return []float64{m.Intercept + floats.Dot(m.Coefficients, features)}, nil
}

func (m *LinearModel) Save(path string) error {
	return writeArtifact(path, linearArtifact{
		artifactHeader: artifactHeader{ModelType: ModelTypeLinear, FeatureNames: FeatureNames()},
		Intercept:      m.Intercept,
		Coefficients:   m.Coefficients,
	})
}

func decodeLinearModel(payload []byte) (*LinearModel, error) {
	var artifact linearArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return nil, err
	}
	if want := len(FeatureNames()); len(artifact.Coefficients) != want {
		return nil, fmt.Errorf("expected %d coefficients, got %d", want, len(artifact.Coefficients))
	}
	return &LinearModel{Intercept: artifact.Intercept, Coefficients: artifact.Coefficients}, nil
}
