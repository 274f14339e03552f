package forest

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Node is one node of a regression tree, stored in a flat slice.
type Node struct {
	Feature    int
	Threshold  float64
	LeftChild  int
	RightChild int
	Leaf       bool
	Value      float64
}

// Tree is a single variance-minimizing regression tree.
type Tree struct {
	Nodes []Node
}

// PredictRow routes one feature vector to a leaf.
func (t *Tree) PredictRow(x []float64) float64 {
	nodeIdx := 0
	for nodeIdx >= 0 && nodeIdx < len(t.Nodes) {
		node := t.Nodes[nodeIdx]
		if node.Leaf {
			return node.Value
		}
		if x[node.Feature] <= node.Threshold {
			nodeIdx = node.LeftChild
		} else {
			nodeIdx = node.RightChild
		}
	}
	return 0
}

// splitInfo describes the best split found for a node.
type splitInfo struct {
	Feature   int
	Threshold float64
	Gain      float64
}

// treeBuilder grows one tree over a bootstrap sample. All randomness comes
// from the caller-provided rng.
type treeBuilder struct {
	X           *mat.Dense
	y           *mat.VecDense
	params      Params
	maxFeatures int
	rng         *rand.Rand
}

// build grows the tree from the given bootstrap indices.
func (b *treeBuilder) build(indices []int) Tree {
	tree := Tree{}
	b.buildNode(&tree, indices, 0)
	return tree
}

// buildNode recursively appends nodes, returning the new node's index.
func (b *treeBuilder) buildNode(tree *Tree, indices []int, depth int) int {
	nodeIdx := len(tree.Nodes)

	sum, sumSq := momentSums(b.y, indices)
	n := float64(len(indices))
	mean := sum / n
	nodeSS := sumSq - sum*sum/n

	// Stopping conditions: depth limit, too few samples to split, or a pure
	// node (zero variance within numerical noise).
	if (b.params.MaxDepth > 0 && depth >= b.params.MaxDepth) ||
		len(indices) < b.params.MinSamplesSplit ||
		nodeSS <= 1e-12 {
		tree.Nodes = append(tree.Nodes, Node{Leaf: true, Value: mean, LeftChild: -1, RightChild: -1})
		return nodeIdx
	}

	best := b.findBestSplit(indices, nodeSS)
	if best.Gain <= 0 {
		tree.Nodes = append(tree.Nodes, Node{Leaf: true, Value: mean, LeftChild: -1, RightChild: -1})
		return nodeIdx
	}

	tree.Nodes = append(tree.Nodes, Node{
		Feature:   best.Feature,
		Threshold: best.Threshold,
	})

	var leftIndices, rightIndices []int
	for _, idx := range indices {
		if b.X.At(idx, best.Feature) <= best.Threshold {
			leftIndices = append(leftIndices, idx)
		} else {
			rightIndices = append(rightIndices, idx)
		}
	}

	leftChild := b.buildNode(tree, leftIndices, depth+1)
	rightChild := b.buildNode(tree, rightIndices, depth+1)
	tree.Nodes[nodeIdx].LeftChild = leftChild
	tree.Nodes[nodeIdx].RightChild = rightChild

	return nodeIdx
}

// findBestSplit scans a random feature subset for the split with the
// largest variance reduction.
func (b *treeBuilder) findBestSplit(indices []int, nodeSS float64) splitInfo {
	_, cols := b.X.Dims()
	best := splitInfo{Feature: -1, Gain: -math.MaxFloat64}

	// Random feature subset per split: this is what decorrelates the trees.
	perm := b.rng.Perm(cols)
	features := perm[:b.maxFeatures]

	for _, feature := range features {
		split := b.findBestSplitForFeature(indices, feature, nodeSS)
		if split.Gain > best.Gain {
			best = split
		}
	}

	return best
}

// findBestSplitForFeature scans all thresholds of one feature. The gain of
// a split is the reduction in total within-node sum of squares:
//
//	gain = SS(node) - SS(left) - SS(right)
//
// maintained incrementally over the sorted sample order.
func (b *treeBuilder) findBestSplitForFeature(indices []int, feature int, nodeSS float64) splitInfo {
	type valueIdx struct {
		value float64
		idx   int
	}
	values := make([]valueIdx, len(indices))
	for i, idx := range indices {
		values[i] = valueIdx{value: b.X.At(idx, feature), idx: idx}
	}
	sort.Slice(values, func(i, j int) bool { return values[i].value < values[j].value })

	totalSum, totalSumSq := momentSums(b.y, indices)

	best := splitInfo{Feature: feature, Gain: -math.MaxFloat64}

	var leftSum, leftSumSq float64
	leftCount := 0

	for i := 0; i < len(values)-1; i++ {
		yv := b.y.AtVec(values[i].idx)
		leftSum += yv
		leftSumSq += yv * yv
		leftCount++

		// No threshold separates equal values.
		if values[i].value == values[i+1].value {
			continue
		}

		rightCount := len(indices) - leftCount
		if leftCount < b.params.MinSamplesLeaf || rightCount < b.params.MinSamplesLeaf {
			continue
		}

		rightSum := totalSum - leftSum
		rightSumSq := totalSumSq - leftSumSq

		leftSS := leftSumSq - leftSum*leftSum/float64(leftCount)
		rightSS := rightSumSq - rightSum*rightSum/float64(rightCount)

		gain := nodeSS - leftSS - rightSS
		if gain > best.Gain {
			best.Gain = gain
			best.Threshold = (values[i].value + values[i+1].value) / 2
		}
	}

	return best
}

func momentSums(y *mat.VecDense, indices []int) (sum, sumSq float64) {
	for _, idx := range indices {
		v := y.AtVec(idx)
		sum += v
		sumSq += v * v
	}
	return sum, sumSq
}
