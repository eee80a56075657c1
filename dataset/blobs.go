package dataset

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/goknn/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// MakeBlobs generates isotropic gaussian clusters for testing and examples.
// Each center spawns nSamplesPerBlob points with the given standard deviation;
// the returned y holds the originating center's index as the class label.
// The same seed reproduces the same dataset.
func MakeBlobs(nSamplesPerBlob int, centers [][]float64, stdDev float64, seed int) (X *mat.Dense, y *mat.Dense, err error) {
	if nSamplesPerBlob < 1 {
		return nil, nil, errors.NewValidationError("nSamplesPerBlob", "must be at least 1", nSamplesPerBlob)
	}
	if len(centers) == 0 {
		return nil, nil, errors.NewValueError("MakeBlobs", "need at least one center")
	}
	if stdDev < 0 {
		return nil, nil, errors.NewValidationError("stdDev", "must be non-negative", stdDev)
	}

	nFeatures := len(centers[0])
	if nFeatures == 0 {
		return nil, nil, errors.NewValueError("MakeBlobs", "centers must have at least one coordinate")
	}
	for i, c := range centers {
		if len(c) != nFeatures {
			return nil, nil, errors.NewDimensionError("MakeBlobs", nFeatures, len(c), 1)
		}
		if err := errors.CheckFinite("MakeBlobs", c); err != nil {
			return nil, nil, errors.Wrapf(err, "goknn: center %d is not finite", i)
		}
	}

	nSamples := nSamplesPerBlob * len(centers)
	X = mat.NewDense(nSamples, nFeatures, nil)
	y = mat.NewDense(nSamples, 1, nil)

	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	row := 0
	for label, center := range centers {
		for i := 0; i < nSamplesPerBlob; i++ {
			for j := 0; j < nFeatures; j++ {
				X.Set(row, j, center[j]+r.NormFloat64()*stdDev)
			}
			y.Set(row, 0, float64(label))
			row++
		}
	}

	return X, y, nil
}
