package neighbors

import (
	"fmt"
	"sort"

	"github.com/YuminosukeSato/goknn/core/model"
	"github.com/YuminosukeSato/goknn/core/parallel"
	"github.com/YuminosukeSato/goknn/metrics"
	"github.com/YuminosukeSato/goknn/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// 予測の並列処理の閾値（この値以下の行数では逐次処理を使用）
const predictParallelThreshold = 1000

// KNNClassifier はk近傍法による分類器
//
// 予測はk件の近傍ラベルの多数決で行う。得票数が同数の場合は
// 最も小さいラベル値を選ぶ（決定的なタイブレーク）。
type KNNClassifier struct {
	model.BaseEstimator

	// K は予測時に参照する近傍数
	K int

	index   *NeighborIndex
	labels  []float64
	classes []float64
}

// NewKNNClassifier は新しいKNNClassifierを作成する
//
// パラメータ:
//   - k: 予測時に参照する近傍数
func NewKNNClassifier(k int) *KNNClassifier {
	return &KNNClassifier{
		K:     k,
		index: NewNeighborIndex(),
	}
}

// Fit はモデルを訓練データで学習させる
//
// 訓練データの保持は内部のNeighborIndexに委譲する。ラベル列yは
// Xと同じ行数の列ベクトルであること。
//
// パラメータ:
//   - X: 訓練データ (n_samples × n_features の行列)
//   - y: ラベル (n_samples × 1 の行列)
//
// 戻り値:
//   - error: エラーが発生した場合
func (c *KNNClassifier) Fit(X, y mat.Matrix) error {
	r, cols := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || cols == 0 {
		return errors.NewModelError("KNNClassifier.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("KNNClassifier.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("KNNClassifier.Fit", "y must be a column vector")
	}
	if c.K < 1 {
		return errors.NewValidationError("k", "must be >= 1", c.K)
	}
	if c.K > r {
		return errors.NewValidationError("k", "must not exceed the number of training samples", c.K)
	}

	if c.index == nil {
		c.index = NewNeighborIndex()
	}
	if err := c.index.Fit(X); err != nil {
		return err
	}

	// ラベルをコピーして保持
	c.labels = make([]float64, r)
	for i := 0; i < r; i++ {
		c.labels[i] = y.At(i, 0)
	}
	if err := errors.CheckFinite("KNNClassifier.Fit", c.labels); err != nil {
		return err
	}

	c.classes = uniqueSorted(c.labels)

	c.SetTrainShape(r, cols)
	return nil
}

// Predict は入力データの各行に対する予測ラベルを返す
//
// パラメータ:
//   - X: 予測するデータ (n_samples × n_features の行列)
//
// 戻り値:
//   - mat.Matrix: 予測ラベル (n_samples × 1 の行列)
//   - error: エラーが発生した場合
func (c *KNNClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("KNNClassifier", "Predict")
	}

	r, cols := X.Dims()
	if cols != c.NFeatures() {
		return nil, errors.NewDimensionError("KNNClassifier.Predict", c.NFeatures(), cols, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	rowErrs := make([]error, r)

	parallel.ParallelizeWithThreshold(r, predictParallelThreshold, func(start, end int) {
		point := make([]float64, cols)
		for i := start; i < end; i++ {
			mat.Row(point, i, X)
			nearest, err := c.index.Query(point, c.K)
			if err != nil {
				rowErrs[i] = err
				continue
			}
			predictions.Set(i, 0, c.vote(nearest))
		}
	})

	for _, err := range rowErrs {
		if err != nil {
			return nil, err
		}
	}

	return predictions, nil
}

// PredictProba は各クラスへの所属確率（近傍の得票率）を返す
//
// パラメータ:
//   - X: 予測するデータ (n_samples × n_features の行列)
//
// 戻り値:
//   - mat.Matrix: 確率 (n_samples × n_classes の行列、列はClasses()の順)
//   - error: エラーが発生した場合
func (c *KNNClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("KNNClassifier", "PredictProba")
	}

	r, cols := X.Dims()
	if cols != c.NFeatures() {
		return nil, errors.NewDimensionError("KNNClassifier.PredictProba", c.NFeatures(), cols, 1)
	}

	classPos := make(map[float64]int, len(c.classes))
	for pos, label := range c.classes {
		classPos[label] = pos
	}

	proba := mat.NewDense(r, len(c.classes), nil)
	rowErrs := make([]error, r)

	parallel.ParallelizeWithThreshold(r, predictParallelThreshold, func(start, end int) {
		point := make([]float64, cols)
		for i := start; i < end; i++ {
			mat.Row(point, i, X)
			nearest, err := c.index.Query(point, c.K)
			if err != nil {
				rowErrs[i] = err
				continue
			}
			for _, nb := range nearest {
				proba.Set(i, classPos[c.labels[nb.Index]], proba.At(i, classPos[c.labels[nb.Index]])+1)
			}
			for j := range c.classes {
				proba.Set(i, j, proba.At(i, j)/float64(len(nearest)))
			}
		}
	})

	for _, err := range rowErrs {
		if err != nil {
			return nil, err
		}
	}

	return proba, nil
}

// Classes は学習時に観測したクラスラベルを昇順で返す
func (c *KNNClassifier) Classes() []float64 {
	out := make([]float64, len(c.classes))
	copy(out, c.classes)
	return out
}

// Score はテストデータに対する正解率を返す
//
// パラメータ:
//   - X: テストデータ
//   - y: 正解ラベル (n_samples × 1 の行列、空の場合はエラー)
//
// 戻り値:
//   - float64: 正解率 [0, 1]
//   - error: エラーが発生した場合
func (c *KNNClassifier) Score(X, y mat.Matrix) (float64, error) {
	if !c.IsFitted() {
		return 0, errors.NewNotFittedError("KNNClassifier", "Score")
	}

	yPred, err := c.Predict(X)
	if err != nil {
		return 0, err
	}

	return metrics.AccuracyMatrix(y, yPred)
}

// GetParams は分類器のハイパーパラメータを取得する
func (c *KNNClassifier) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_neighbors": c.K,
	}
}

// String は分類器の文字列表現を返す
func (c *KNNClassifier) String() string {
	if !c.IsFitted() {
		return fmt.Sprintf("KNNClassifier(n_neighbors=%d)", c.K)
	}
	return fmt.Sprintf("KNNClassifier(n_neighbors=%d, n_samples=%d, n_features=%d)",
		c.K, c.NSamples(), c.NFeatures())
}

// vote は近傍ラベルの多数決を行う
// 得票数が同数の場合は最小のラベル値を返す
func (c *KNNClassifier) vote(nearest []Neighbor) float64 {
	votes := make(map[float64]int, len(nearest))
	for _, nb := range nearest {
		votes[c.labels[nb.Index]]++
	}

	best := c.labels[nearest[0].Index]
	bestCount := votes[best]
	for label, count := range votes {
		if count > bestCount || (count == bestCount && label < best) {
			best = label
			bestCount = count
		}
	}
	return best
}

// uniqueSorted は重複を除いた昇順のラベル列を返す
func uniqueSorted(labels []float64) []float64 {
	seen := make(map[float64]struct{}, len(labels))
	var out []float64
	for _, l := range labels {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	sort.Float64s(out)
	return out
}
