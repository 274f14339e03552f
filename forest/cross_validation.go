package forest

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/giilab/giiscope/metrics"
	"github.com/giilab/giiscope/pkg/errors"
	"github.com/giilab/giiscope/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// KFold partitions row indices into k disjoint folds.
//
// Fold policy: folds are positional over a seed-shuffled index permutation,
// so the assignment depends on row order plus the seed. The hyperparameter
// search reuses the same splitter configuration as the baseline evaluation;
// the policy never varies silently between runs.
type KFold struct {
	NSplits int
	Shuffle bool
	Seed    int64
}

// NewKFold creates a k-fold splitter. Fewer than two splits falls back to
// the five-fold baseline.
func NewKFold(nSplits int, shuffle bool, seed int64) *KFold {
	if nSplits < 2 {
		nSplits = 5
	}
	return &KFold{NSplits: nSplits, Shuffle: shuffle, Seed: seed}
}

// CVFold is one train/test index split.
type CVFold struct {
	TrainIndices []int
	TestIndices  []int
}

// Split generates the train/test indices for each fold over nSamples rows.
func (kf *KFold) Split(nSamples int) []CVFold {
	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}

	if kf.Shuffle {
		r := rand.New(rand.NewPCG(uint64(kf.Seed), uint64(kf.Seed)))
		r.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]CVFold, kf.NSplits)
	foldSize := nSamples / kf.NSplits
	remainder := nSamples % kf.NSplits

	currentIdx := 0
	for i := 0; i < kf.NSplits; i++ {
		testSize := foldSize
		if i < remainder {
			testSize++
		}

		testIndices := make([]int, testSize)
		copy(testIndices, indices[currentIdx:currentIdx+testSize])

		trainIndices := make([]int, 0, nSamples-testSize)
		trainIndices = append(trainIndices, indices[:currentIdx]...)
		trainIndices = append(trainIndices, indices[currentIdx+testSize:]...)

		folds[i] = CVFold{TrainIndices: trainIndices, TestIndices: testIndices}
		currentIdx += testSize
	}

	return folds
}

// CVResult stores per-fold cross-validation scores.
type CVResult struct {
	Scores []float64
}

// Mean returns the mean fold score.
func (cv *CVResult) Mean() float64 {
	if len(cv.Scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range cv.Scores {
		sum += s
	}
	return sum / float64(len(cv.Scores))
}

// Std returns the sample standard deviation of the fold scores.
func (cv *CVResult) Std() float64 {
	if len(cv.Scores) <= 1 {
		return 0
	}
	mean := cv.Mean()
	sumSq := 0.0
	for _, s := range cv.Scores {
		diff := s - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(cv.Scores)-1))
}

// CrossValidate evaluates params over the splitter's folds, scoring each
// fold with R² against the held-out fold's own mean. Folds run in
// parallel; each only reads the shared matrix and writes its own score.
//
// Fewer eligible rows than folds is an InsufficientDataError: the fold
// count is never silently reduced. A degenerate fold (all targets
// identical) surfaces the zero-variance error instead of a placeholder
// score.
func CrossValidate(params Params, X *mat.Dense, y *mat.VecDense, kf *KFold) (*CVResult, error) {
	rows, _ := X.Dims()
	if rows < kf.NSplits {
		return nil, errors.NewInsufficientDataError("CrossValidate", kf.NSplits, rows)
	}

	folds := kf.Split(rows)
	result := &CVResult{Scores: make([]float64, len(folds))}
	foldErrs := make([]error, len(folds))

	var wg sync.WaitGroup
	for foldIdx := range folds {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			fold := folds[idx]
			trainX, trainY := extractSubset(X, y, fold.TrainIndices)
			testX, testY := extractSubset(X, y, fold.TestIndices)

			rf := NewRegressor(params)
			if err := rf.Fit(trainX, trainY); err != nil {
				foldErrs[idx] = errors.Wrapf(err, "fold %d training", idx)
				return
			}

			pred, err := rf.Predict(testX)
			if err != nil {
				foldErrs[idx] = errors.Wrapf(err, "fold %d prediction", idx)
				return
			}

			score, err := metrics.R2Score(testY, pred)
			if err != nil {
				foldErrs[idx] = errors.Wrapf(err, "fold %d scoring", idx)
				return
			}
			result.Scores[idx] = score
		}(foldIdx)
	}
	wg.Wait()

	for _, err := range foldErrs {
		if err != nil {
			return nil, err
		}
	}

	log.GetLoggerWithName("forest.cv").Info("cross-validation complete",
		log.OperationKey, "evaluate",
		log.FoldsKey, kf.NSplits,
		log.SeedKey, kf.Seed,
		log.MeanR2Key, result.Mean(),
		log.StdR2Key, result.Std())

	return result, nil
}

// extractSubset copies the selected rows of X and y.
func extractSubset(X *mat.Dense, y *mat.VecDense, indices []int) (*mat.Dense, *mat.VecDense) {
	_, cols := X.Dims()
	xSubset := mat.NewDense(len(indices), cols, nil)
	ySubset := mat.NewVecDense(len(indices), nil)

	for i, idx := range indices {
		for j := 0; j < cols; j++ {
			xSubset.Set(i, j, X.At(idx, j))
		}
		ySubset.SetVec(i, y.AtVec(idx))
	}

	return xSubset, ySubset
}
