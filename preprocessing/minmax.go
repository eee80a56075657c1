package preprocessing

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/goknn/core/model"
	"github.com/YuminosukeSato/goknn/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// MinMaxScaler はscikit-learn互換のMin-Maxスケーラー
// データを指定した範囲（デフォルト[0,1]）にスケーリングする
type MinMaxScaler struct {
	model.BaseEstimator

	// Scale は各特徴量のスケール (max - min)
	Scale []float64

	// DataMin は学習データの最小値
	DataMin []float64

	// DataMax は学習データの最大値
	DataMax []float64

	// FeatureRange はスケーリング後の範囲 [min, max]
	FeatureRange [2]float64
}

// NewMinMaxScaler は新しいMinMaxScalerを作成する
//
// パラメータ:
//   - featureRange: スケーリング後の範囲 [min, max] (デフォルト: [0, 1])
//
// 戻り値:
//   - *MinMaxScaler: 新しいMinMaxScalerインスタンス
func NewMinMaxScaler(featureRange [2]float64) *MinMaxScaler {
	return &MinMaxScaler{
		FeatureRange: featureRange,
	}
}

// NewMinMaxScalerDefault はデフォルト設定([0,1]範囲)でMinMaxScalerを作成する
func NewMinMaxScalerDefault() *MinMaxScaler {
	return NewMinMaxScaler([2]float64{0.0, 1.0})
}

// Fit は訓練データから最小値・最大値を計算する
//
// パラメータ:
//   - X: 訓練データ (n_samples × n_features の行列)
//
// 戻り値:
//   - error: エラーが発生した場合
func (m *MinMaxScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("MinMaxScaler.Fit", "empty data", errors.ErrEmptyData)
	}
	// 縮退した範囲はInverseTransformでゼロ除算になるためここで弾く
	if m.FeatureRange[0] >= m.FeatureRange[1] {
		return errors.NewValidationError("feature_range", "minimum must be less than maximum", m.FeatureRange)
	}

	if err := errors.CheckMatrix("MinMaxScaler.Fit", X, r, c); err != nil {
		return err
	}

	m.DataMin = make([]float64, c)
	m.DataMax = make([]float64, c)
	m.Scale = make([]float64, c)

	// 各特徴量の最小値・最大値を計算
	for j := 0; j < c; j++ {
		minVal := X.At(0, j)
		maxVal := X.At(0, j)

		for i := 1; i < r; i++ {
			val := X.At(i, j)
			if val < minVal {
				minVal = val
			}
			if val > maxVal {
				maxVal = val
			}
		}

		m.DataMin[j] = minVal
		m.DataMax[j] = maxVal

		// スケールを計算 (max - min)
		dataRange := maxVal - minVal
		if math.Abs(dataRange) < degenerateStdTolerance {
			// 定数特徴量: スケールを1にして未変換のまま通過させる
			errors.Warn(errors.NewDegenerateFeatureWarning("MinMaxScaler", j, dataRange))
			m.Scale[j] = 1.0
		} else {
			m.Scale[j] = dataRange
		}
	}

	m.SetTrainShape(r, c)
	return nil
}

// Transform は学習済みの統計情報を使ってデータをスケーリングする
//
// 変換結果は新しく確保した行列として返し、入力Xは決して変更しない。
//
// パラメータ:
//   - X: 変換するデータ
//
// 戻り値:
//   - mat.Matrix: スケーリングされたデータ
//   - error: エラーが発生した場合
func (m *MinMaxScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MinMaxScaler", "Transform")
	}

	r, c := X.Dims()
	if c != m.NFeatures() {
		return nil, errors.NewDimensionError("MinMaxScaler.Transform", m.NFeatures(), c, 1)
	}

	// 結果を格納する行列を作成
	result := mat.NewDense(r, c, nil)

	// 各要素をスケーリング
	featureRange := m.FeatureRange[1] - m.FeatureRange[0]
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			val := X.At(i, j)
			// X_scaled = X_std * (max - min) + min
			// where X_std = (X - X.min) / (X.max - X.min)
			scaled := (val-m.DataMin[j])/m.Scale[j]*featureRange + m.FeatureRange[0]
			result.Set(i, j, scaled)
		}
	}

	return result, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
//
// パラメータ:
//   - X: 訓練・変換するデータ
//
// 戻り値:
//   - mat.Matrix: スケーリングされたデータ
//   - error: エラーが発生した場合
func (m *MinMaxScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// InverseTransform はスケーリングされたデータを元の範囲に戻す
//
// パラメータ:
//   - X: スケーリングされたデータ
//
// 戻り値:
//   - mat.Matrix: 元の範囲に戻されたデータ
//   - error: エラーが発生した場合
func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MinMaxScaler", "InverseTransform")
	}

	r, c := X.Dims()
	if c != m.NFeatures() {
		return nil, errors.NewDimensionError("MinMaxScaler.InverseTransform", m.NFeatures(), c, 1)
	}

	// 結果を格納する行列を作成
	result := mat.NewDense(r, c, nil)

	// 各要素を逆変換
	featureRange := m.FeatureRange[1] - m.FeatureRange[0]
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			val := X.At(i, j)
			// 逆変換: X_orig = ((X_scaled - min) / (max - min)) * (data_max - data_min) + data_min
			original := ((val-m.FeatureRange[0])/featureRange)*m.Scale[j] + m.DataMin[j]
			result.Set(i, j, original)
		}
	}

	return result, nil
}

// GetParams はスケーラーのパラメータを取得する
func (m *MinMaxScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"feature_range": m.FeatureRange,
	}
}

// String はスケーラーの文字列表現を返す
func (m *MinMaxScaler) String() string {
	if !m.IsFitted() {
		return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f])",
			m.FeatureRange[0], m.FeatureRange[1])
	}
	return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f], n_features=%d)",
		m.FeatureRange[0], m.FeatureRange[1], m.NFeatures())
}
