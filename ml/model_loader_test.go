package ml

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewModelLoaderWarnsWhenArtifactAbsent(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	path := filepath.Join(t.TempDir(), "model.json")

	NewModelLoader(path, zap.New(core))

	entries := logs.FilterField(zap.String("path", path)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)

	core, logs = observer.New(zapcore.WarnLevel)
	NewModelLoader(writeTestForest(t), zap.New(core))
	assert.Zero(t, logs.Len())
}

func TestModelLoaderCachesHandle(t *testing.T) {
	loader := NewModelLoader(writeTestForest(t), nil)
	assert.False(t, loader.Loaded())

	first, err := loader.Load()
	require.NoError(t, err)
	second, err := loader.Load()
	require.NoError(t, err)

	assert.Same(t, first.(*RandomForest), second.(*RandomForest))
	assert.True(t, loader.Loaded())
}

func TestModelLoaderKeepsHandleAfterFileRemoved(t *testing.T) {
	path := writeTestForest(t)
	loader := NewModelLoader(path, nil)
	first, err := loader.Load()
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	second, err := loader.Load()
	require.NoError(t, err)
	assert.Same(t, first.(*RandomForest), second.(*RandomForest))
}

func TestModelLoaderArtifactMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	loader := NewModelLoader(path, nil)

	_, err := loader.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArtifactMissing))
	assert.False(t, errors.Is(err, ErrInference))
	assert.Contains(t, err.Error(), path)

	var missing *ArtifactMissingError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, path, missing.Path)
	assert.False(t, loader.Loaded())

	// placing the file recovers without a restart
	require.NoError(t, testForest().Save(path))
	model, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, ModelTypeRandomForest, model.Type())
}

func TestLoadModelInferenceErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		message string
	}{
		{"corrupt json", `{"model_type":`, "decode model artifact"},
		{"unknown type", `{"model_type":"svm"}`, "unsupported model type"},
		{"feature mismatch", `{"model_type":"linear","feature_names":["a","b"],"coefficients":[1,2]}`, "feature names mismatch"},
		{"wrong coefficient count", `{"model_type":"linear","coefficients":[1,2]}`, "expected 6 coefficients"},
		{"empty forest", `{"model_type":"random_forest","trees":[]}`, "forest has no trees"},
		{"bad child link", `{"model_type":"decision_tree","nodes":[{"feature_idx":0,"left_child":5,"right_child":6}]}`, "invalid left child"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "model.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.payload), 0o600))

			_, err := LoadModel(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInference))
			assert.Equal(t, "inference_error", ErrorKind(err))
			assert.True(t, strings.Contains(err.Error(), tt.message), err.Error())
		})
	}
}

func TestResolveArtifactPath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "model.json")
	assert.Equal(t, abs, ResolveArtifactPath(abs))

	exe, err := os.Executable()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(exe), "no-such-model.json"), ResolveArtifactPath("no-such-model.json"))
}
