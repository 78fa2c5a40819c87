package ml

import (
	"encoding/json"
	"errors"
	"fmt"
)

// RandomForest averages the outputs of independent regression trees.
type RandomForest struct {
	trees []*DecisionTree
}

type forestArtifact struct {
	artifactHeader
	Trees []forestTree `json:"trees"`
}

type forestTree struct {
	Nodes []TreeNode `json:"nodes"`
}

func NewRandomForest(trees ...*DecisionTree) *RandomForest {
	return &RandomForest{trees: trees}
}

func (rf *RandomForest) Type() string {
	return ModelTypeRandomForest
}

func (rf *RandomForest) Predict(features []float64) ([]float64, error) {
	if len(rf.trees) == 0 {
		return nil, errors.New("forest has no trees")
	}
	sum := 0.0
	for i, tree := range rf.trees {
		value, err := tree.evaluate(features)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		sum += value
	}
	return []float64{sum / float64(len(rf.trees))}, nil
}

func (rf *RandomForest) Save(path string) error {
	if len(rf.trees) == 0 {
		return errors.New("forest has no trees")
	}
	trees := make([]forestTree, len(rf.trees))
	for i, tree := range rf.trees {
		trees[i] = forestTree{Nodes: tree.nodes}
	}
	return writeArtifact(path, forestArtifact{
		artifactHeader: artifactHeader{ModelType: ModelTypeRandomForest, FeatureNames: FeatureNames()},
		Trees:          trees,
	})
}

func decodeRandomForest(payload []byte) (*RandomForest, error) {
	var artifact forestArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return nil, err
	}
	if len(artifact.Trees) == 0 {
		return nil, errors.New("forest has no trees")
	}
	featureCount := len(FeatureNames())
	forest := &RandomForest{trees: make([]*DecisionTree, len(artifact.Trees))}
	for i, t := range artifact.Trees {
		tree := &DecisionTree{nodes: t.Nodes}
		if err := tree.validate(featureCount); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		forest.trees[i] = tree
	}
	return forest, nil
}
