package forest

import (
	"math/rand/v2"

	"github.com/giilab/giiscope/pkg/errors"
	"github.com/giilab/giiscope/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// SearchSpace lists the candidate values per hyperparameter. Empty slices
// keep the corresponding DefaultParams value fixed.
type SearchSpace struct {
	NumTrees        []int
	MaxDepth        []int
	MinSamplesSplit []int
	MinSamplesLeaf  []int
	MaxFeatures     []int
}

// DefaultSearchSpace is the baseline randomized-search grid.
func DefaultSearchSpace() SearchSpace {
	return SearchSpace{
		NumTrees:        []int{100, 200, 400},
		MaxDepth:        []int{0, 3, 5, 8, 12},
		MinSamplesSplit: []int{2, 4, 8},
		MinSamplesLeaf:  []int{1, 2, 4},
		MaxFeatures:     []int{0, 2, 3, 5},
	}
}

// Trial is one evaluated configuration.
type Trial struct {
	Params Params
	Mean   float64
	Std    float64
}

// SearchResult is the outcome of a randomized hyperparameter search.
type SearchResult struct {
	Best   Trial
	Trials []Trial

	// Model is the final regressor, refit on the full matrix with the best
	// configuration.
	Model *Regressor
}

// RandomizedSearch samples nTrials configurations from space, evaluates each
// with the given splitter (the same folds as the baseline evaluation), picks
// the best mean cross-validated R², and refits on the full matrix.
//
// Configuration sampling is driven by seed, and every trial's forest uses
// that same seed, so the search is reproducible end to end. Trial scores may
// be negative throughout; the best of a bad field is still the best.
func RandomizedSearch(space SearchSpace, nTrials int, seed int64, X *mat.Dense, y *mat.VecDense, kf *KFold) (*SearchResult, error) {
	if nTrials <= 0 {
		return nil, errors.NewValueError("RandomizedSearch", "nTrials must be positive")
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))

	// Draw all configurations up front so sampling order never depends on
	// evaluation timing.
	configs := make([]Params, nTrials)
	for i := range configs {
		configs[i] = sampleParams(space, seed, rng)
	}

	logger := log.GetLoggerWithName("forest.search")

	result := &SearchResult{Trials: make([]Trial, 0, nTrials)}
	bestIdx := -1
	for i, params := range configs {
		cv, err := CrossValidate(params, X, y, kf)
		if err != nil {
			return nil, errors.Wrapf(err, "trial %d", i)
		}
		trial := Trial{Params: params, Mean: cv.Mean(), Std: cv.Std()}
		result.Trials = append(result.Trials, trial)

		if bestIdx < 0 || trial.Mean > result.Best.Mean {
			bestIdx = i
			result.Best = trial
		}

		logger.Debug("trial evaluated",
			log.OperationKey, "tune",
			"trial", i,
			log.MeanR2Key, trial.Mean,
			log.StdR2Key, trial.Std)
	}

	result.Model = NewRegressor(result.Best.Params)
	if err := result.Model.Fit(X, y); err != nil {
		return nil, errors.Wrap(err, "final refit")
	}

	logger.Info("randomized search complete",
		log.OperationKey, "tune",
		log.TrialsKey, nTrials,
		log.SeedKey, seed,
		log.MeanR2Key, result.Best.Mean,
		log.StdR2Key, result.Best.Std)

	return result, nil
}

func sampleParams(space SearchSpace, seed int64, rng *rand.Rand) Params {
	p := DefaultParams()
	p.Seed = seed
	if len(space.NumTrees) > 0 {
		p.NumTrees = space.NumTrees[rng.IntN(len(space.NumTrees))]
	}
	if len(space.MaxDepth) > 0 {
		p.MaxDepth = space.MaxDepth[rng.IntN(len(space.MaxDepth))]
	}
	if len(space.MinSamplesSplit) > 0 {
		p.MinSamplesSplit = space.MinSamplesSplit[rng.IntN(len(space.MinSamplesSplit))]
	}
	if len(space.MinSamplesLeaf) > 0 {
		p.MinSamplesLeaf = space.MinSamplesLeaf[rng.IntN(len(space.MinSamplesLeaf))]
	}
	if len(space.MaxFeatures) > 0 {
		p.MaxFeatures = space.MaxFeatures[rng.IntN(len(space.MaxFeatures))]
	}
	return p
}
