package modelselection

import (
	"log/slog"
	"math"
	"sync"

	"github.com/YuminosukeSato/goknn/core/model"
	"github.com/YuminosukeSato/goknn/pkg/errors"
	mllog "github.com/YuminosukeSato/goknn/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// Estimator is the minimal contract the cross-validation harness needs.
type Estimator interface {
	model.Fitter
	model.Scorer
}

// CVResult holds per-fold cross-validation scores.
type CVResult struct {
	TestScores  []float64
	TrainScores []float64
}

// GetMeanScore returns the mean test score across folds.
func (r *CVResult) GetMeanScore() float64 {
	if len(r.TestScores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range r.TestScores {
		sum += s
	}
	return sum / float64(len(r.TestScores))
}

// GetStdScore returns the population standard deviation of test scores.
func (r *CVResult) GetStdScore() float64 {
	n := len(r.TestScores)
	if n == 0 {
		return 0
	}
	mean := r.GetMeanScore()
	variance := 0.0
	for _, s := range r.TestScores {
		d := s - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(n))
}

// CrossValidate evaluates an estimator with cross-validation. newEstimator is
// called once per fold so every fold trains a fresh model; state never leaks
// between folds. Folds are evaluated in parallel.
func CrossValidate(newEstimator func() Estimator, X, y mat.Matrix, splitter Splitter) (*CVResult, error) {
	if newEstimator == nil {
		return nil, errors.NewValueError("CrossValidate", "newEstimator must not be nil")
	}
	nSamples, _ := X.Dims()
	ry, _ := y.Dims()
	if nSamples == 0 {
		return nil, errors.NewModelError("CrossValidate", "empty data", errors.ErrEmptyData)
	}
	if ry != nSamples {
		return nil, errors.NewDimensionError("CrossValidate", nSamples, ry, 0)
	}
	if splitter == nil {
		splitter = NewKFold(5, false, 0)
	}
	// Every fold needs at least one test sample, or extractSubset would be
	// asked to build a zero-row matrix
	if splitter.NSplits() > nSamples {
		return nil, errors.NewValidationError("splitter", "number of folds must not exceed the number of samples", splitter.NSplits())
	}

	folds := splitter.Split(X, y)
	result := &CVResult{
		TestScores:  make([]float64, len(folds)),
		TrainScores: make([]float64, len(folds)),
	}
	foldErrs := make([]error, len(folds))

	var wg sync.WaitGroup
	for i, fold := range folds {
		wg.Add(1)
		go func(idx int, f Fold) {
			defer wg.Done()

			XTrain, yTrain := extractSubset(X, y, f.TrainIndices)
			XTest, yTest := extractSubset(X, y, f.TestIndices)

			est := newEstimator()
			if err := est.Fit(XTrain, yTrain); err != nil {
				foldErrs[idx] = errors.Wrapf(err, "goknn: cross-validation fold %d fit failed", idx)
				return
			}

			trainScore, err := est.Score(XTrain, yTrain)
			if err != nil {
				foldErrs[idx] = errors.Wrapf(err, "goknn: cross-validation fold %d train scoring failed", idx)
				return
			}
			testScore, err := est.Score(XTest, yTest)
			if err != nil {
				foldErrs[idx] = errors.Wrapf(err, "goknn: cross-validation fold %d test scoring failed", idx)
				return
			}

			result.TrainScores[idx] = trainScore
			result.TestScores[idx] = testScore
			slog.Debug("cross-validation fold complete",
				mllog.FoldKey, idx,
				mllog.ScoreKey, testScore,
			)
		}(i, fold)
	}
	wg.Wait()

	for _, err := range foldErrs {
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// CrossValidateClassifier cross-validates a classifier factory. Stratified
// splitting is used when splitter is nil.
func CrossValidateClassifier(newClassifier func() model.Classifier, X, y mat.Matrix, splitter Splitter) (*CVResult, error) {
	if newClassifier == nil {
		return nil, errors.NewValueError("CrossValidateClassifier", "newClassifier must not be nil")
	}
	if splitter == nil {
		splitter = NewStratifiedKFold(5, false, 0)
	}
	return CrossValidate(func() Estimator { return newClassifier() }, X, y, splitter)
}

// CrossValidateRegressor cross-validates a regressor factory.
func CrossValidateRegressor(newRegressor func() model.Regressor, X, y mat.Matrix, splitter Splitter) (*CVResult, error) {
	if newRegressor == nil {
		return nil, errors.NewValueError("CrossValidateRegressor", "newRegressor must not be nil")
	}
	return CrossValidate(func() Estimator { return newRegressor() }, X, y, splitter)
}
