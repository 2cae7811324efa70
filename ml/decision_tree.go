package ml

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "os"
)

// RegressionTree is a flattened CART regressor. Node 0 is the root.
type RegressionTree struct {
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
    Features []string   `json:"features,omitempty"`
    Nodes    []TreeNode `json:"nodes"`
}

// NewRegressionTree validates nodes and returns a ready tree.
func NewRegressionTree(nodes []TreeNode) (*RegressionTree, error) {
    if err := validateNodes(nodes); err != nil {
        return nil, err
    }
    return &RegressionTree{nodes: nodes}, nil
}

func (dt *RegressionTree) Predict(ctx context.Context, features FeatureVector) (float64, error) {
    return dt.evaluate(features)
}

func (dt *RegressionTree) evaluate(features FeatureVector) (float64, error) {
    if len(dt.nodes) == 0 {
        return 0, ErrNotLoaded
    }
    idx := 0
    // a valid tree reaches a leaf in at most len(nodes) steps
    for steps := 0; steps <= len(dt.nodes); steps++ {
        node := dt.nodes[idx]
        if node.IsLeaf {
            return node.Value, nil
        }
        if features[node.FeatureIdx] <= node.Threshold {
            idx = node.LeftChild
        } else {
            idx = node.RightChild
        }
    }
    return 0, errors.New("invalid tree state: cycle detected")
}

func (dt *RegressionTree) Load(path string) error {
    payload, err := os.ReadFile(path)
    if err != nil {
        return err
    }
    var artifact treeArtifact
    if err := json.Unmarshal(payload, &artifact); err != nil {
        return fmt.Errorf("decode tree: %w", err)
    }
    if err := checkFeatureOrder(artifact.Features); err != nil {
        return err
    }
    if err := validateNodes(artifact.Nodes); err != nil {
        return err
    }
    dt.nodes = artifact.Nodes
    return nil
}

func validateNodes(nodes []TreeNode) error {
    if len(nodes) == 0 {
        return errors.New("tree has no nodes")
    }
    for i, node := range nodes {
        if node.IsLeaf {
            continue
        }
        if node.FeatureIdx < 0 || node.FeatureIdx >= FeatureCount {
            return fmt.Errorf("node %d: feature index %d out of range", i, node.FeatureIdx)
        }
        if node.LeftChild <= 0 || node.LeftChild >= len(nodes) ||
            node.RightChild <= 0 || node.RightChild >= len(nodes) {
            return fmt.Errorf("node %d: child index out of range", i)
        }
    }
    return nil
}
