package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/priyanshu-naveen/Coffee-Shop-Prediction/logging"
	"github.com/priyanshu-naveen/Coffee-Shop-Prediction/monitoring"
)

// LoadModel reads and decodes the artifact at path.
func LoadModel(path string) (Model, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ArtifactMissingError{Path: path}
		}
		return nil, inferenceError("read model artifact", err)
	}
	model, err := decodeModel(payload)
	if err != nil {
		return nil, inferenceError("decode model artifact", err)
	}
	return model, nil
}

func decodeModel(payload []byte) (Model, error) {
	var header artifactHeader
	if err := json.Unmarshal(payload, &header); err != nil {
		return nil, err
	}
	if len(header.FeatureNames) > 0 && !slices.Equal(header.FeatureNames, FeatureNames()) {
		return nil, fmt.Errorf("feature names mismatch: artifact expects %v", header.FeatureNames)
	}

	switch header.ModelType {
	case ModelTypeDecisionTree:
		return decodeDecisionTree(payload)
	case ModelTypeRandomForest:
		return decodeRandomForest(payload)
	case ModelTypeLinear:
		return decodeLinearModel(payload)
	default:
		return nil, fmt.Errorf("unsupported model type %q", header.ModelType)
	}
}

// ResolveArtifactPath anchors a relative artifact path beside the running
// executable, falling back to the working directory when the file only exists there.
func ResolveArtifactPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	exe, err := os.Executable()
	if err != nil {
		return path
	}
	besideExe := filepath.Join(filepath.Dir(exe), path)
	if _, err := os.Stat(besideExe); err == nil {
		return besideExe
	}
	if _, err := os.Stat(path); err == nil {
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	}
	return besideExe
}

// ModelLoader loads the artifact once per process. Failed loads are not
// remembered, so placing the file makes the next call succeed.
type ModelLoader struct {
	path   string
	logger *zap.Logger

	mu    sync.Mutex
	model Model
}

func NewModelLoader(path string, logger *zap.Logger) *ModelLoader {
	if logger == nil {
		logger = logging.L()
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		logger.Warn("model artifact not found; place it here before predicting", zap.String("path", path))
	}
	return &ModelLoader{path: path, logger: logger}
}

func (l *ModelLoader) Path() string {
	return l.path
}

func (l *ModelLoader) Load() (Model, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.model != nil {
		return l.model, nil
	}

	start := time.Now()
	model, err := LoadModel(l.path)
	took := time.Since(start)
	monitoring.ObserveModelLoad(took, ErrorKind(err))
	if err != nil {
		l.logger.Warn("model load failed",
			zap.String("path", l.path),
			zap.String("kind", ErrorKind(err)),
			zap.Error(err))
		return nil, err
	}

	l.model = model
	l.logger.Info("model loaded",
		zap.String("path", l.path),
		zap.String("model_type", model.Type()),
		zap.Duration("took", took))
	return model, nil
}

func (l *ModelLoader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.model != nil
}
