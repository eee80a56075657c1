package neighbors

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/goknn/core/model"
	"github.com/YuminosukeSato/goknn/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Neighbor は1件の近傍探索結果を表す
type Neighbor struct {
	// Index は訓練データ内での行番号
	Index int

	// Distance はクエリ点からのユークリッド距離
	Distance float64
}

// NeighborIndex は総当たり方式の近傍インデックス
//
// Fitで訓練データの防御的コピーを保持し、Queryでクエリ点から全訓練点への
// ユークリッド距離を計算して近い順にk件返す。空間分割木（KD-tree等）による
// 高速化は行わない。
//
// クエリ点が訓練データ内の点と一致する場合、その点自身が距離0の先頭要素として
// 返される。自己評価時に自分自身を除外したい場合は呼び出し側でフィルタすること。
type NeighborIndex struct {
	model.BaseEstimator

	data *mat.Dense
}

// NewNeighborIndex は新しいNeighborIndexを作成する
func NewNeighborIndex() *NeighborIndex {
	return &NeighborIndex{}
}

// Fit は訓練データをコピーして保持する
//
// 入力Xはコピーされるため、Fit後に呼び出し側がXを変更してもインデックスは
// 影響を受けない。距離計算以外の前処理は行わない。
//
// パラメータ:
//   - X: 訓練データ (n_samples × n_features の行列)
//
// 戻り値:
//   - error: エラーが発生した場合
func (idx *NeighborIndex) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("NeighborIndex.Fit", "empty data", errors.ErrEmptyData)
	}

	if err := errors.CheckMatrix("NeighborIndex.Fit", X, r, c); err != nil {
		return err
	}

	// 防御的コピー
	idx.data = mat.DenseCopyOf(X)

	idx.SetTrainShape(r, c)
	return nil
}

// Query はクエリ点に最も近いk件の訓練点を距離の昇順で返す
//
// 距離が同値の場合は挿入順（訓練データの行番号順）を保つ安定ソートで
// 決定的に順序付けされる。
//
// パラメータ:
//   - point: クエリ点（次元は訓練データと一致すること）
//   - k: 取得する近傍数（1 ≤ k ≤ 訓練データのサンプル数）
//
// 戻り値:
//   - []Neighbor: 距離昇順のk件の近傍
//   - error: エラーが発生した場合
func (idx *NeighborIndex) Query(point []float64, k int) ([]Neighbor, error) {
	if !idx.IsFitted() {
		return nil, errors.NewNotFittedError("NeighborIndex", "Query")
	}

	n := idx.NSamples()
	p := idx.NFeatures()

	if len(point) != p {
		return nil, errors.NewDimensionError("NeighborIndex.Query", p, len(point), 1)
	}
	if k < 1 {
		return nil, errors.NewValidationError("k", "must be >= 1", k)
	}
	if k > n {
		return nil, errors.NewValidationError("k", "must not exceed the number of stored samples", k)
	}
	if err := errors.CheckFinite("NeighborIndex.Query", point); err != nil {
		return nil, err
	}

	// 全訓練点への距離を計算
	neighbors := make([]Neighbor, n)
	for i := 0; i < n; i++ {
		neighbors[i] = Neighbor{
			Index:    i,
			Distance: euclideanDistance(idx.data.RawRowView(i), point),
		}
	}

	// 安定ソート: 同距離は行番号順
	sort.SliceStable(neighbors, func(a, b int) bool {
		return neighbors[a].Distance < neighbors[b].Distance
	})

	return neighbors[:k:k], nil
}

// Data は保持している訓練データへの読み取り専用ビューを返す
func (idx *NeighborIndex) Data() mat.Matrix {
	if idx.data == nil {
		return nil
	}
	return idx.data
}

// euclideanDistance は2つのベクトル間のユークリッド距離を計算する
// 次元の一致は呼び出し側で保証すること
func euclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
