package ml

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchArtifactReportsCreation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	loader := NewModelLoader(path, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan ArtifactEvent, 8)
	if err := WatchArtifact(ctx, loader, nil, func(ev ArtifactEvent) {
		select {
		case events <- ev:
		default:
		}
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := testForest().Save(path); err != nil {
		t.Fatalf("save forest: %v", err)
	}

	select {
	case ev := <-events:
		if ev.Path != path {
			t.Fatalf("expected path %s, got %s", path, ev.Path)
		}
		if ev.Loaded {
			t.Fatal("expected model not loaded yet")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for artifact event")
	}
}

func TestWatchArtifactReportsRewriteAfterLoad(t *testing.T) {
	path := writeTestForest(t)
	loader := NewModelLoader(path, nil)
	if _, err := loader.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan ArtifactEvent, 8)
	if err := WatchArtifact(ctx, loader, nil, func(ev ArtifactEvent) {
		select {
		case events <- ev:
		default:
		}
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := NewLinearModel(100, make([]float64, len(FeatureNames()))).Save(path); err != nil {
		t.Fatalf("save linear model: %v", err)
	}

	select {
	case ev := <-events:
		if !ev.Loaded {
			t.Fatal("expected event to report the already loaded model")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for artifact event")
	}

	model, err := loader.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.Type() != ModelTypeRandomForest {
		t.Fatalf("expected cached forest to stay in use, got %s", model.Type())
	}
}

func TestWatchArtifactMissingDirectory(t *testing.T) {
	loader := NewModelLoader(filepath.Join(t.TempDir(), "absent", "model.json"), nil)
	if err := WatchArtifact(context.Background(), loader, nil, nil); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
