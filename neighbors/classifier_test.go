package neighbors

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func twoClusterData() (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(4, 2, []float64{
		1, 1,
		1, 2,
		10, 10,
		10, 11,
	})
	// Class 0 = cluster around (1,1), class 1 = cluster around (10,10)
	y := mat.NewDense(4, 1, []float64{0, 0, 1, 1})
	return X, y
}

func TestKNNClassifierPredict(t *testing.T) {
	X, y := twoClusterData()

	clf := NewKNNClassifier(1)
	if err := clf.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	tests := []struct {
		name  string
		point []float64
		want  float64
	}{
		{name: "Near cluster 0", point: []float64{1, 1.5}, want: 0},
		{name: "Near cluster 1", point: []float64{10, 10.5}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := clf.Predict(mat.NewDense(1, 2, tt.point))
			if err != nil {
				t.Fatalf("Predict failed: %v", err)
			}
			if got := pred.At(0, 0); got != tt.want {
				t.Errorf("Predict(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestKNNClassifierMajorityVote(t *testing.T) {
	// Three of the five nearest points carry label 1
	X := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
	y := mat.NewDense(5, 1, []float64{0, 1, 1, 1, 0})

	clf := NewKNNClassifier(5)
	if err := clf.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	pred, err := clf.Predict(mat.NewDense(1, 1, []float64{3}))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if got := pred.At(0, 0); got != 1 {
		t.Errorf("majority vote = %v, want 1", got)
	}
}

func TestKNNClassifierVoteTieBreaking(t *testing.T) {
	// k=2 with one vote per class: the smaller label value must win
	X := mat.NewDense(2, 1, []float64{1, 3})
	y := mat.NewDense(2, 1, []float64{2, 1})

	clf := NewKNNClassifier(2)
	if err := clf.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	pred, err := clf.Predict(mat.NewDense(1, 1, []float64{2}))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if got := pred.At(0, 0); got != 1 {
		t.Errorf("tied vote = %v, want 1 (smallest label)", got)
	}
}

func TestKNNClassifierPredictProba(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 10})
	y := mat.NewDense(4, 1, []float64{0, 0, 1, 1})

	clf := NewKNNClassifier(3)
	if err := clf.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	proba, err := clf.PredictProba(mat.NewDense(1, 1, []float64{2}))
	if err != nil {
		t.Fatalf("PredictProba failed: %v", err)
	}

	// Neighbors of 2 within k=3: {1, 2, 3} -> labels {0, 0, 1}
	if got := proba.At(0, 0); math.Abs(got-2.0/3.0) > 1e-12 {
		t.Errorf("P(class 0) = %v, want 2/3", got)
	}
	if got := proba.At(0, 1); math.Abs(got-1.0/3.0) > 1e-12 {
		t.Errorf("P(class 1) = %v, want 1/3", got)
	}
}

func TestKNNClassifierClasses(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{3, 1, 3, 2})

	clf := NewKNNClassifier(1)
	if err := clf.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	classes := clf.Classes()
	want := []float64{1, 2, 3}
	if len(classes) != len(want) {
		t.Fatalf("Classes() length = %d, want %d", len(classes), len(want))
	}
	for i := range want {
		if classes[i] != want[i] {
			t.Errorf("Classes()[%d] = %v, want %v", i, classes[i], want[i])
		}
	}
}

func TestKNNClassifierScore(t *testing.T) {
	X, y := twoClusterData()

	clf := NewKNNClassifier(1)
	if err := clf.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	tests := []struct {
		name  string
		testX *mat.Dense
		testY *mat.Dense
		want  float64
	}{
		{
			name:  "All correct",
			testX: mat.NewDense(2, 2, []float64{1, 1.5, 10, 10.5}),
			testY: mat.NewDense(2, 1, []float64{0, 1}),
			want:  1.0,
		},
		{
			name:  "All wrong",
			testX: mat.NewDense(2, 2, []float64{1, 1.5, 10, 10.5}),
			testY: mat.NewDense(2, 1, []float64{1, 0}),
			want:  0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := clf.Score(tt.testX, tt.testY)
			if err != nil {
				t.Fatalf("Score failed: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKNNClassifierScoreEmptyLabels(t *testing.T) {
	X, y := twoClusterData()

	clf := NewKNNClassifier(1)
	if err := clf.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if _, err := clf.Score(&mat.Dense{}, &mat.Dense{}); err == nil {
		t.Error("Score on empty test set should fail")
	}
}

func TestKNNClassifierFitErrors(t *testing.T) {
	tests := []struct {
		name string
		k    int
		X    *mat.Dense
		y    *mat.Dense
	}{
		{
			name: "k exceeds samples",
			k:    5,
			X:    mat.NewDense(2, 1, []float64{1, 2}),
			y:    mat.NewDense(2, 1, []float64{0, 1}),
		},
		{
			name: "k below one",
			k:    0,
			X:    mat.NewDense(2, 1, []float64{1, 2}),
			y:    mat.NewDense(2, 1, []float64{0, 1}),
		},
		{
			name: "Row count mismatch",
			k:    1,
			X:    mat.NewDense(3, 1, []float64{1, 2, 3}),
			y:    mat.NewDense(2, 1, []float64{0, 1}),
		},
		{
			name: "y not a column vector",
			k:    1,
			X:    mat.NewDense(2, 1, []float64{1, 2}),
			y:    mat.NewDense(1, 2, []float64{0, 1}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clf := NewKNNClassifier(tt.k)
			if err := clf.Fit(tt.X, tt.y); err == nil {
				t.Error("Fit should fail")
			}
		})
	}
}

func TestKNNClassifierNotFitted(t *testing.T) {
	clf := NewKNNClassifier(1)
	X := mat.NewDense(1, 2, []float64{1, 2})

	if _, err := clf.Predict(X); err == nil {
		t.Error("Predict before Fit should fail")
	}
	if _, err := clf.PredictProba(X); err == nil {
		t.Error("PredictProba before Fit should fail")
	}
	if _, err := clf.Score(X, mat.NewDense(1, 1, []float64{0})); err == nil {
		t.Error("Score before Fit should fail")
	}
}

func TestKNNClassifierNoStateLeakage(t *testing.T) {
	// Two independently constructed classifiers fit on different data must not
	// influence each other
	X1 := mat.NewDense(2, 1, []float64{1, 2})
	y1 := mat.NewDense(2, 1, []float64{0, 0})
	X2 := mat.NewDense(2, 1, []float64{1, 2})
	y2 := mat.NewDense(2, 1, []float64{1, 1})

	clf1 := NewKNNClassifier(1)
	clf2 := NewKNNClassifier(1)
	if err := clf1.Fit(X1, y1); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if err := clf2.Fit(X2, y2); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	q := mat.NewDense(1, 1, []float64{1.4})
	p1, err := clf1.Predict(q)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	p2, err := clf2.Predict(q)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	if p1.At(0, 0) != 0 || p2.At(0, 0) != 1 {
		t.Errorf("predictions = %v, %v; want 0, 1", p1.At(0, 0), p2.At(0, 0))
	}
}
