package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// DecisionTree is a regression tree stored as a flat node array, root at index 0.
type DecisionTree struct {
	nodes []TreeNode
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	Value      float64 `json:"value"`
	IsLeaf     bool    `json:"is_leaf"`
}

type treeArtifact struct {
	artifactHeader
	Nodes []TreeNode `json:"nodes"`
}

func NewDecisionTree(nodes []TreeNode) *DecisionTree {
	return &DecisionTree{nodes: append([]TreeNode(nil), nodes...)}
}

func (dt *DecisionTree) Type() string {
	return ModelTypeDecisionTree
}

func (dt *DecisionTree) Predict(features []float64) ([]float64, error) {
	value, err := dt.evaluate(features)
	if err != nil {
		return nil, err
	}
	return []float64{value}, nil
}

func (dt *DecisionTree) evaluate(features []float64) (float64, error) {
	if len(dt.nodes) == 0 {
		return 0, errors.New("tree has no nodes")
	}
	idx := 0
	// a well-formed tree reaches a leaf in fewer steps than it has nodes
	for steps := 0; steps <= len(dt.nodes); steps++ {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node.Value, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return 0, fmt.Errorf("feature index %d out of range for %d features", node.FeatureIdx, len(features))
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(dt.nodes) {
			return 0, errors.New("invalid tree state")
		}
	}
	return 0, errors.New("tree contains a cycle")
}

// validate checks the node links once at load time.
func (dt *DecisionTree) validate(featureCount int) error {
	if len(dt.nodes) == 0 {
		return errors.New("tree has no nodes")
	}
	for i, node := range dt.nodes {
		if node.IsLeaf {
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= featureCount {
			return fmt.Errorf("node %d: feature index %d out of range", i, node.FeatureIdx)
		}
		if node.LeftChild <= i || node.LeftChild >= len(dt.nodes) {
			return fmt.Errorf("node %d: invalid left child %d", i, node.LeftChild)
		}
		if node.RightChild <= i || node.RightChild >= len(dt.nodes) {
			return fmt.Errorf("node %d: invalid right child %d", i, node.RightChild)
		}
	}
	return nil
}

func (dt *DecisionTree) Save(path string) error {
	if len(dt.nodes) == 0 {
		return errors.New("tree has no nodes")
	}
	return writeArtifact(path, treeArtifact{
		artifactHeader: artifactHeader{ModelType: ModelTypeDecisionTree, FeatureNames: FeatureNames()},
		Nodes:          dt.nodes,
	})
}

func decodeDecisionTree(payload []byte) (*DecisionTree, error) {
	var artifact treeArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return nil, err
	}
	tree := &DecisionTree{nodes: artifact.Nodes}
	if err := tree.validate(len(FeatureNames())); err != nil {
		return nil, err
	}
	return tree, nil
}

func writeArtifact(path string, artifact interface{}) error {
	payload, err := json.Marshal(artifact)
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}
