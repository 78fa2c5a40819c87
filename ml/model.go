package ml

// Model is a loaded, read-only regression artifact.
type Model interface {
	// Predict maps one ordered feature vector to the model outputs.
	Predict(features []float64) ([]float64, error)
	Save(path string) error
	Type() string
}

const (
	ModelTypeDecisionTree = "decision_tree"
	ModelTypeRandomForest = "random_forest"
	ModelTypeLinear       = "linear"
)

// artifactHeader is the part of every artifact the loader inspects before dispatching.
type artifactHeader struct {
	ModelType    string   `json:"model_type"`
	FeatureNames []string `json:"feature_names"`
}
