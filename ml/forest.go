package ml

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "os"
)

// RandomForest averages the output of its trees.
type RandomForest struct {
    trees []*RegressionTree
}

type forestArtifact struct {
    Features []string     `json:"features,omitempty"`
    Trees    [][]TreeNode `json:"trees"`
}

func (rf *RandomForest) Predict(ctx context.Context, features FeatureVector) (float64, error) {
    if len(rf.trees) == 0 {
        return 0, ErrNotLoaded
    }
    sum := 0.0
    for i, tree := range rf.trees {
        value, err := tree.evaluate(features)
        if err != nil {
            return 0, fmt.Errorf("tree %d: %w", i, err)
        }
        sum += value
    }
    return sum / float64(len(rf.trees)), nil
}

func (rf *RandomForest) Load(path string) error {
    payload, err := os.ReadFile(path)
    if err != nil {
        return err
    }
    var artifact forestArtifact
    if err := json.Unmarshal(payload, &artifact); err != nil {
        return fmt.Errorf("decode forest: %w", err)
    }
    if err := checkFeatureOrder(artifact.Features); err != nil {
        return err
    }
    if len(artifact.Trees) == 0 {
        return errors.New("forest has no trees")
    }
    trees := make([]*RegressionTree, 0, len(artifact.Trees))
    for i, nodes := range artifact.Trees {
        tree, err := NewRegressionTree(nodes)
        if err != nil {
            return fmt.Errorf("tree %d: %w", i, err)
        }
        trees = append(trees, tree)
    }
    rf.trees = trees
    return nil
}
