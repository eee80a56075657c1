// Package modelselection provides data splitting, cross-validation and
// hyperparameter search utilities for goknn estimators.
package modelselection

import (
	"math/rand/v2"
	"sort"

	"github.com/YuminosukeSato/goknn/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Fold represents a single train/test partition in cross-validation.
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// Splitter defines the interface for cross-validation splitters.
type Splitter interface {
	Split(X, y mat.Matrix) []Fold
	NSplits() int
}

// KFold implements k-fold cross-validation splitting.
type KFold struct {
	NFolds  int
	Shuffle bool
	Seed    int
}

// NewKFold creates a new k-fold splitter. Fewer than 2 folds falls back to 5.
func NewKFold(nFolds int, shuffle bool, seed int) *KFold {
	if nFolds < 2 {
		nFolds = 5 // Default to 5-fold
	}
	return &KFold{
		NFolds:  nFolds,
		Shuffle: shuffle,
		Seed:    seed,
	}
}

// NSplits returns the number of folds.
func (kf *KFold) NSplits() int {
	return kf.NFolds
}

// Split generates train/test indices for each fold.
func (kf *KFold) Split(X, _ mat.Matrix) []Fold {
	nSamples, _ := X.Dims()

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

	folds := make([]Fold, kf.NFolds)
	foldSize := nSamples / kf.NFolds
	remainder := nSamples % kf.NFolds

	currentIdx := 0
	for i := 0; i < kf.NFolds; i++ {
		testSize := foldSize
		if i < remainder {
			testSize++
		}

		testIndices := make([]int, testSize)
		copy(testIndices, indices[currentIdx:currentIdx+testSize])

		// Train indices are everything outside the test slice
		trainIndices := make([]int, 0, nSamples-testSize)
		trainIndices = append(trainIndices, indices[:currentIdx]...)
		trainIndices = append(trainIndices, indices[currentIdx+testSize:]...)

		folds[i] = Fold{
			TrainIndices: trainIndices,
			TestIndices:  testIndices,
		}

		currentIdx += testSize
	}

	return folds
}

// StratifiedKFold implements stratified k-fold cross-validation: each fold
// preserves the per-class sample proportions of the full dataset.
type StratifiedKFold struct {
	NFolds  int
	Shuffle bool
	Seed    int
}

// NewStratifiedKFold creates a new stratified k-fold splitter.
func NewStratifiedKFold(nFolds int, shuffle bool, seed int) *StratifiedKFold {
	if nFolds < 2 {
		nFolds = 5
	}
	return &StratifiedKFold{
		NFolds:  nFolds,
		Shuffle: shuffle,
		Seed:    seed,
	}
}

// NSplits returns the number of folds.
func (skf *StratifiedKFold) NSplits() int {
	return skf.NFolds
}

// Split generates stratified train/test indices for each fold.
func (skf *StratifiedKFold) Split(X, y mat.Matrix) []Fold {
	nSamples, _ := X.Dims()

	// Group indices by class, keeping label iteration deterministic
	classIndices := make(map[float64][]int)
	var labels []float64
	for i := 0; i < nSamples; i++ {
		label := y.At(i, 0)
		if _, ok := classIndices[label]; !ok {
			labels = append(labels, label)
		}
		classIndices[label] = append(classIndices[label], i)
	}
	sort.Float64s(labels)

	if skf.Shuffle {
		r := rand.New(rand.NewPCG(uint64(skf.Seed), uint64(skf.Seed)))
		for _, label := range labels {
			indices := classIndices[label]
			r.Shuffle(len(indices), func(i, j int) {
				indices[i], indices[j] = indices[j], indices[i]
			})
		}
	}

	folds := make([]Fold, skf.NFolds)

	// Distribute each class across folds
	for _, label := range labels {
		indices := classIndices[label]
		nClass := len(indices)
		foldSize := nClass / skf.NFolds
		remainder := nClass % skf.NFolds

		currentIdx := 0
		for i := 0; i < skf.NFolds; i++ {
			testSize := foldSize
			if i < remainder {
				testSize++
			}

			for j := 0; j < testSize && currentIdx < nClass; j++ {
				folds[i].TestIndices = append(folds[i].TestIndices, indices[currentIdx])
				currentIdx++
			}
		}
	}

	// Build train sets (all samples not in test)
	for i := 0; i < skf.NFolds; i++ {
		testSet := make(map[int]bool, len(folds[i].TestIndices))
		for _, idx := range folds[i].TestIndices {
			testSet[idx] = true
		}

		for j := 0; j < nSamples; j++ {
			if !testSet[j] {
				folds[i].TrainIndices = append(folds[i].TrainIndices, j)
			}
		}
	}

	return folds
}

// TrainTestSplit partitions X and y into train and test subsets.
// testSize is the fraction of samples assigned to the test set, in (0, 1).
func TrainTestSplit(X, y mat.Matrix, testSize float64, seed int) (XTrain, XTest, yTrain, yTest *mat.Dense, err error) {
	nSamples, _ := X.Dims()
	ry, _ := y.Dims()

	if nSamples == 0 {
		return nil, nil, nil, nil, errors.NewModelError("TrainTestSplit", "empty data", errors.ErrEmptyData)
	}
	if ry != nSamples {
		return nil, nil, nil, nil, errors.NewDimensionError("TrainTestSplit", nSamples, ry, 0)
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, nil, nil, errors.NewValidationError("testSize", "must be in (0, 1)", testSize)
	}

	nTest := int(float64(nSamples) * testSize)
	if nTest < 1 {
		nTest = 1
	}
	if nTest >= nSamples {
		nTest = nSamples - 1
	}

	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	r.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	XTest, yTest = extractSubset(X, y, indices[:nTest])
	XTrain, yTrain = extractSubset(X, y, indices[nTest:])
	return XTrain, XTest, yTrain, yTest, nil
}

// extractSubset extracts the rows of X and y named by indices.
func extractSubset(X, y mat.Matrix, indices []int) (*mat.Dense, *mat.Dense) {
	rows := len(indices)
	_, xCols := X.Dims()
	_, yCols := y.Dims()

	// Sort for cache-friendly row access; relative order is irrelevant to
	// the estimators
	sortedIndices := make([]int, len(indices))
	copy(sortedIndices, indices)
	sort.Ints(sortedIndices)

	xSubset := mat.NewDense(rows, xCols, nil)
	ySubset := mat.NewDense(rows, yCols, nil)

	for i, idx := range sortedIndices {
		for j := 0; j < xCols; j++ {
			xSubset.Set(i, j, X.At(idx, j))
		}
		for j := 0; j < yCols; j++ {
			ySubset.Set(i, j, y.At(idx, j))
		}
	}

	return xSubset, ySubset
}
