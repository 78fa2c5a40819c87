package ml

import (
	"path/filepath"
	"testing"
)

// testForest is small enough to evaluate by hand:
//   - tree A: customers <= 100 ? 300 : 1200
//   - tree B: order value <= 4 ? 500 : (foot traffic <= 1000 ? 1500 : 2500)
func testForest() *RandomForest {
	treeA := NewDecisionTree([]TreeNode{
		{FeatureIdx: 0, Threshold: 100, LeftChild: 1, RightChild: 2},
		{FeatureIdx: -1, LeftChild: -1, RightChild: -1, Value: 300, IsLeaf: true},
		{FeatureIdx: -1, LeftChild: -1, RightChild: -1, Value: 1200, IsLeaf: true},
	})
	treeB := NewDecisionTree([]TreeNode{
		{FeatureIdx: 1, Threshold: 4, LeftChild: 1, RightChild: 2},
		{FeatureIdx: -1, LeftChild: -1, RightChild: -1, Value: 500, IsLeaf: true},
		{FeatureIdx: 5, Threshold: 1000, LeftChild: 3, RightChild: 4},
		{FeatureIdx: -1, LeftChild: -1, RightChild: -1, Value: 1500, IsLeaf: true},
		{FeatureIdx: -1, LeftChild: -1, RightChild: -1, Value: 2500, IsLeaf: true},
	})
	return NewRandomForest(treeA, treeB)
}

func writeTestForest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	if err := testForest().Save(path); err != nil {
		t.Fatalf("save forest: %v", err)
	}
	return path
}

func minimumRecord() FeatureRecord {
	return FeatureRecord{NumEmployees: 1}
}

func maximumRecord() FeatureRecord {
	return FeatureRecord{
		CustomersPerDay: 1000,
		AvgOrderValue:   20.0,
		OperatingHours:  24,
		NumEmployees:    50,
		MarketingSpend:  1000.0,
		FootTraffic:     2000,
	}
}
