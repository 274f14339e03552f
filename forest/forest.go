// Package forest implements a random-forest regressor for the GII feature
// matrix: bagging over bootstrap samples of rows, random feature subsets per
// split, variance-minimizing trees, averaged inference.
//
// All randomness — bootstrap sampling, feature subsetting, fold shuffling,
// hyperparameter sampling — derives from an explicit seed. Given the same
// seed and the same feature matrix, scores are bit-reproducible whether the
// work runs sequentially or in parallel, because every tree and fold draws
// from its own seed-derived generator and writes to its own output slot.
package forest

import (
	"math/rand/v2"
	"time"

	"github.com/giilab/giiscope/core/model"
	"github.com/giilab/giiscope/core/parallel"
	"github.com/giilab/giiscope/metrics"
	"github.com/giilab/giiscope/pkg/errors"
	"github.com/giilab/giiscope/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// Params are the regressor hyperparameters.
type Params struct {
	// NumTrees is the ensemble size.
	NumTrees int
	// MaxDepth limits tree depth; <= 0 means unlimited.
	MaxDepth int
	// MinSamplesSplit is the minimum node size eligible for splitting.
	MinSamplesSplit int
	// MinSamplesLeaf is the minimum sample count in each child.
	MinSamplesLeaf int
	// MaxFeatures is the number of features considered per split;
	// <= 0 means one third of the features (at least one).
	MaxFeatures int
	// Seed drives all randomness.
	Seed int64
}

// DefaultParams returns the baseline configuration.
func DefaultParams() Params {
	return Params{
		NumTrees:        200,
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		MaxFeatures:     0,
		Seed:            42,
	}
}

func (p Params) withDefaults() Params {
	if p.NumTrees <= 0 {
		p.NumTrees = 200
	}
	if p.MinSamplesSplit < 2 {
		p.MinSamplesSplit = 2
	}
	if p.MinSamplesLeaf < 1 {
		p.MinSamplesLeaf = 1
	}
	return p
}

// maxFeaturesFor resolves the per-split feature count for a matrix width.
func (p Params) maxFeaturesFor(cols int) int {
	k := p.MaxFeatures
	if k <= 0 {
		k = cols / 3
	}
	if k < 1 {
		k = 1
	}
	if k > cols {
		k = cols
	}
	return k
}

// Regressor is a bootstrap-bagged ensemble of regression trees.
type Regressor struct {
	model.BaseEstimator

	Params      Params
	Trees       []Tree
	NumFeatures int
}

// NewRegressor creates an unfitted regressor.
func NewRegressor(params Params) *Regressor {
	return &Regressor{Params: params.withDefaults()}
}

// Fit trains the ensemble. Trees are grown in parallel; tree i draws from a
// generator seeded by (Seed, i), so the result does not depend on scheduling.
func (rf *Regressor) Fit(X mat.Matrix, y *mat.VecDense) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "Regressor.Fit")
	}
	if y.Len() != rows {
		return errors.NewDimensionError("Regressor.Fit", rows, y.Len(), 0)
	}

	xDense := mat.DenseCopyOf(X)
	params := rf.Params.withDefaults()
	maxFeatures := params.maxFeaturesFor(cols)

	start := time.Now()
	trees := make([]Tree, params.NumTrees)
	parallel.ParallelizeWithThreshold(params.NumTrees, 8, func(startIdx, endIdx int) {
		for t := startIdx; t < endIdx; t++ {
			rng := rand.New(rand.NewPCG(uint64(params.Seed), uint64(t)))

			// Bootstrap sample: rows drawn with replacement.
			indices := make([]int, rows)
			for i := range indices {
				indices[i] = rng.IntN(rows)
			}

			builder := &treeBuilder{
				X:           xDense,
				y:           y,
				params:      params,
				maxFeatures: maxFeatures,
				rng:         rng,
			}
			trees[t] = builder.build(indices)
		}
	})

	rf.Trees = trees
	rf.NumFeatures = cols
	rf.SetFitted()

	log.GetLoggerWithName("forest").Debug("ensemble fitted",
		log.OperationKey, "fit",
		log.RowsKey, rows,
		log.FeaturesKey, cols,
		log.SeedKey, params.Seed,
		"trees", params.NumTrees,
		log.DurationMsKey, time.Since(start).Milliseconds())

	return nil
}

// Predict averages the trees' predictions for each row of X.
func (rf *Regressor) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if !rf.IsFitted() {
		return nil, errors.NewNotFittedError("Regressor", "Predict")
	}
	rows, cols := X.Dims()
	if cols != rf.NumFeatures {
		return nil, errors.NewDimensionError("Regressor.Predict", rf.NumFeatures, cols, 1)
	}

	out := mat.NewVecDense(rows, nil)
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			row[j] = X.At(i, j)
		}
		v, err := rf.PredictRow(row)
		if err != nil {
			return nil, err
		}
		out.SetVec(i, v)
	}
	return out, nil
}

// PredictRow averages the trees' predictions for a single feature vector.
func (rf *Regressor) PredictRow(x []float64) (float64, error) {
	if !rf.IsFitted() {
		return 0, errors.NewNotFittedError("Regressor", "PredictRow")
	}
	if len(x) != rf.NumFeatures {
		return 0, errors.NewDimensionError("Regressor.PredictRow", rf.NumFeatures, len(x), 1)
	}

	var sum float64
	for i := range rf.Trees {
		sum += rf.Trees[i].PredictRow(x)
	}
	return sum / float64(len(rf.Trees)), nil
}

// Score returns the coefficient of determination of the predictions on X
// against y.
func (rf *Regressor) Score(X mat.Matrix, y *mat.VecDense) (float64, error) {
	pred, err := rf.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(y, pred)
}
