// Package neighbors implements brute-force k-nearest-neighbor search and the
// estimators built on top of it.
//
// NeighborIndex stores a defensive copy of the training observations and
// answers distance queries by exhaustive scan. KNNClassifier predicts by
// majority vote over the k nearest labels, KNNRegressor by their arithmetic
// mean. Both follow the estimator conventions of core/model: Fit before
// Predict, structured errors from pkg/errors on shape mismatches or invalid k.
//
// No spatial partitioning structure (KD-tree, ball tree) is built; query cost
// is O(n·p) per point. For the dataset sizes this library targets that is the
// honest trade-off against index build cost.
package neighbors
