package model

import "testing"

func TestBaseEstimatorLifecycle(t *testing.T) {
	var e BaseEstimator

	if e.IsFitted() {
		t.Error("new estimator should not be fitted")
	}

	e.SetTrainShape(100, 5)
	if !e.IsFitted() {
		t.Error("estimator should be fitted after SetTrainShape")
	}
	if e.NSamples() != 100 || e.NFeatures() != 5 {
		t.Errorf("train shape = (%d, %d), want (100, 5)", e.NSamples(), e.NFeatures())
	}

	e.Reset()
	if e.IsFitted() {
		t.Error("estimator should not be fitted after Reset")
	}
	if e.NSamples() != 0 || e.NFeatures() != 0 {
		t.Errorf("train shape after Reset = (%d, %d), want (0, 0)", e.NSamples(), e.NFeatures())
	}
}

func TestBaseEstimatorSetFitted(t *testing.T) {
	var e BaseEstimator
	e.SetFitted()
	if !e.IsFitted() {
		t.Error("estimator should be fitted after SetFitted")
	}
}
