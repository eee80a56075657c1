package modelselection

import (
	"log/slog"
	"sort"

	"github.com/YuminosukeSato/goknn/pkg/errors"
	mllog "github.com/YuminosukeSato/goknn/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// KScore pairs a candidate neighbor count with its cross-validated score.
type KScore struct {
	K     int
	Score float64
}

// GridSearchKResult holds the outcome of a neighbor-count sweep.
type GridSearchKResult struct {
	// Results lists one entry per candidate, in ascending k order.
	Results []KScore
	// BestK is the candidate with the highest mean score. Ties go to the
	// smaller k, the cheaper model.
	BestK     int
	BestScore float64
}

// GridSearchK sweeps candidate neighbor counts with cross-validation and
// reports the score of each. newEstimator builds a fresh estimator for a
// given k; it is called once per fold per candidate.
func GridSearchK(newEstimator func(k int) Estimator, ks []int, X, y mat.Matrix, splitter Splitter) (*GridSearchKResult, error) {
	if newEstimator == nil {
		return nil, errors.NewValueError("GridSearchK", "newEstimator must not be nil")
	}
	if len(ks) == 0 {
		return nil, errors.NewValueError("GridSearchK", "no candidate k values given")
	}
	for _, k := range ks {
		if k < 1 {
			return nil, errors.NewValidationError("ks", "candidate k must be at least 1", k)
		}
	}

	candidates := make([]int, len(ks))
	copy(candidates, ks)
	sort.Ints(candidates)

	result := &GridSearchKResult{
		Results: make([]KScore, 0, len(candidates)),
		BestK:   -1,
	}

	for _, k := range candidates {
		cv, err := CrossValidate(func() Estimator { return newEstimator(k) }, X, y, splitter)
		if err != nil {
			return nil, errors.Wrapf(err, "goknn: grid search failed at k=%d", k)
		}

		score := cv.GetMeanScore()
		result.Results = append(result.Results, KScore{K: k, Score: score})
		slog.Debug("grid search candidate evaluated",
			mllog.NeighborsKey, k,
			mllog.ScoreKey, score,
		)

		// Strict comparison keeps the smallest k on ties
		if result.BestK < 0 || score > result.BestScore {
			result.BestK = k
			result.BestScore = score
		}
	}

	return result, nil
}
