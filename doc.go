// Package goknn provides k-nearest-neighbor learning for Go, built around
// brute-force euclidean search over dense gonum matrices.
//
// The API follows scikit-learn conventions: estimators are constructed, fit
// on training data, then queried with Predict or Score. Engineers coming from
// Python's ecosystem should find the surface familiar.
//
// # Quick Start
//
// Classifying points with a 3-nearest-neighbor vote:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/goknn/neighbors"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 2, []float64{1, 1, 1, 2, 10, 10, 10, 11})
//	    y := mat.NewDense(4, 1, []float64{0, 0, 1, 1})
//
//	    clf := neighbors.NewKNNClassifier(3)
//	    if err := clf.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pred, err := clf.Predict(mat.NewDense(1, 2, []float64{2, 2}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Predicted class:", pred.At(0, 0))
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - neighbors: NeighborIndex plus KNNClassifier and KNNRegressor
//   - preprocessing: StandardScaler and MinMaxScaler
//   - metrics: Evaluation metrics (accuracy, MSE, RMSE, MAE, R²)
//   - modelselection: Train/test splitting, cross-validation, grid search over k
//   - pipeline: Transformer chains ending in an estimator
//   - dataset: CSV loading and synthetic blob generation
//   - core/model: Core interfaces and base types
//   - core/parallel: Parallel processing utilities
//
// # Error Handling
//
// All estimators return structured errors from pkg/errors: calling Predict
// before Fit yields a NotFittedError, shape mismatches yield a
// DimensionError, and non-finite inputs are rejected up front. Recoverable
// data-quality conditions, such as a constant feature hitting StandardScaler,
// are reported through the pkg/errors warning hooks instead of failing.
//
// Prediction over large inputs parallelizes across CPU cores automatically;
// fitted estimators are safe for concurrent reads.
package goknn
