package neighbors

import (
	"fmt"

	"github.com/YuminosukeSato/goknn/core/model"
	"github.com/YuminosukeSato/goknn/core/parallel"
	"github.com/YuminosukeSato/goknn/metrics"
	"github.com/YuminosukeSato/goknn/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// KNNRegressor はk近傍法による回帰モデル
//
// 予測はk件の近傍ラベルの算術平均で行う。
type KNNRegressor struct {
	model.BaseEstimator

	// K は予測時に参照する近傍数
	K int

	index  *NeighborIndex
	labels []float64
}

// NewKNNRegressor は新しいKNNRegressorを作成する
//
// パラメータ:
//   - k: 予測時に参照する近傍数
func NewKNNRegressor(k int) *KNNRegressor {
	return &KNNRegressor{
		K:     k,
		index: NewNeighborIndex(),
	}
}

// Fit はモデルを訓練データで学習させる
//
// パラメータ:
//   - X: 訓練データ (n_samples × n_features の行列)
//   - y: 目的変数 (n_samples × 1 の行列)
//
// 戻り値:
//   - error: エラーが発生した場合
func (r *KNNRegressor) Fit(X, y mat.Matrix) error {
	rows, cols := X.Dims()
	ry, cy := y.Dims()

	if rows == 0 || cols == 0 {
		return errors.NewModelError("KNNRegressor.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != rows {
		return errors.NewDimensionError("KNNRegressor.Fit", rows, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("KNNRegressor.Fit", "y must be a column vector")
	}
	if r.K < 1 {
		return errors.NewValidationError("k", "must be >= 1", r.K)
	}
	if r.K > rows {
		return errors.NewValidationError("k", "must not exceed the number of training samples", r.K)
	}

	if r.index == nil {
		r.index = NewNeighborIndex()
	}
	if err := r.index.Fit(X); err != nil {
		return err
	}

	// ラベルをコピーして保持
	r.labels = make([]float64, rows)
	for i := 0; i < rows; i++ {
		r.labels[i] = y.At(i, 0)
	}
	if err := errors.CheckFinite("KNNRegressor.Fit", r.labels); err != nil {
		return err
	}

	r.SetTrainShape(rows, cols)
	return nil
}

// Predict は入力データの各行に対する予測値（近傍ラベルの平均）を返す
//
// パラメータ:
//   - X: 予測するデータ (n_samples × n_features の行列)
//
// 戻り値:
//   - mat.Matrix: 予測値 (n_samples × 1 の行列)
//   - error: エラーが発生した場合
func (r *KNNRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError("KNNRegressor", "Predict")
	}

	rows, cols := X.Dims()
	if cols != r.NFeatures() {
		return nil, errors.NewDimensionError("KNNRegressor.Predict", r.NFeatures(), cols, 1)
	}

	predictions := mat.NewDense(rows, 1, nil)
	rowErrs := make([]error, rows)

	parallel.ParallelizeWithThreshold(rows, predictParallelThreshold, func(start, end int) {
		point := make([]float64, cols)
		for i := start; i < end; i++ {
			mat.Row(point, i, X)
			nearest, err := r.index.Query(point, r.K)
			if err != nil {
				rowErrs[i] = err
				continue
			}

			var sum float64
			for _, nb := range nearest {
				sum += r.labels[nb.Index]
			}
			predictions.Set(i, 0, sum/float64(len(nearest)))
		}
	})

	for _, err := range rowErrs {
		if err != nil {
			return nil, err
		}
	}

	return predictions, nil
}

// Score はテストデータに対する決定係数（R²）を返す
//
// R² = 1 - SS_res/SS_tot。SS_totはyの平均に対する全変動。
//
// パラメータ:
//   - X: テストデータ
//   - y: 正解値 (n_samples × 1 の行列、空の場合はエラー)
//
// 戻り値:
//   - float64: 決定係数
//   - error: エラーが発生した場合
func (r *KNNRegressor) Score(X, y mat.Matrix) (float64, error) {
	if !r.IsFitted() {
		return 0, errors.NewNotFittedError("KNNRegressor", "Score")
	}

	yPred, err := r.Predict(X)
	if err != nil {
		return 0, err
	}

	return metrics.R2ScoreMatrix(y, yPred)
}

// GetParams は回帰モデルのハイパーパラメータを取得する
func (r *KNNRegressor) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_neighbors": r.K,
	}
}

// String は回帰モデルの文字列表現を返す
func (r *KNNRegressor) String() string {
	if !r.IsFitted() {
		return fmt.Sprintf("KNNRegressor(n_neighbors=%d)", r.K)
	}
	return fmt.Sprintf("KNNRegressor(n_neighbors=%d, n_samples=%d, n_features=%d)",
		r.K, r.NSamples(), r.NFeatures())
}
