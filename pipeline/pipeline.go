// Package pipeline chains preprocessing transformers with a final estimator
// behind a single Fit/Predict/Score surface.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/YuminosukeSato/goknn/core/model"
	"github.com/YuminosukeSato/goknn/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Step は名前付きの前処理変換器
type Step struct {
	Name        string
	Transformer model.Transformer
}

// FinalEstimator はパイプライン終端の推定器が満たすインターフェース
type FinalEstimator interface {
	model.Fitter
	model.Predictor
	model.Scorer
}

// Pipeline は変換器の列と終端推定器を束ねる
//
// Fit は各変換器を順に FitTransform で学習させ、変換済みデータで終端推定器を
// 学習させる。Predict / Score は学習済みの変換器列を同じ順序で適用してから
// 終端推定器に委譲する。
type Pipeline struct {
	model.BaseEstimator

	steps     []Step
	estimator FinalEstimator
}

// NewPipeline creates a pipeline from named transformer steps and a final
// estimator. Step names must be unique and non-empty.
func NewPipeline(estimator FinalEstimator, steps ...Step) (*Pipeline, error) {
	if estimator == nil {
		return nil, errors.NewValueError("NewPipeline", "estimator must not be nil")
	}

	seen := make(map[string]bool, len(steps))
	for i, step := range steps {
		if strings.TrimSpace(step.Name) == "" {
			return nil, errors.NewValidationError("steps", fmt.Sprintf("step %d has an empty name", i), step.Name)
		}
		if step.Transformer == nil {
			return nil, errors.NewValidationError("steps", fmt.Sprintf("step %q has a nil transformer", step.Name), nil)
		}
		if seen[step.Name] {
			return nil, errors.NewValidationError("steps", fmt.Sprintf("duplicate step name %q", step.Name), step.Name)
		}
		seen[step.Name] = true
	}

	return &Pipeline{
		steps:     steps,
		estimator: estimator,
	}, nil
}

// Fit は変換器列と終端推定器を順に学習させる
func (p *Pipeline) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "Pipeline.Fit")

	current := X
	for _, step := range p.steps {
		transformed, err := step.Transformer.FitTransform(current)
		if err != nil {
			return errors.Wrapf(err, "goknn: pipeline step %q fit failed", step.Name)
		}
		current = transformed
	}

	if err := p.estimator.Fit(current, y); err != nil {
		return errors.Wrap(err, "goknn: pipeline estimator fit failed")
	}

	r, c := X.Dims()
	p.SetTrainShape(r, c)
	return nil
}

// Transform applies the fitted transformer chain without touching the final
// estimator.
func (p *Pipeline) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "Transform")
	}
	return p.applySteps(X)
}

// Predict は変換器列を適用してから終端推定器で予測する
func (p *Pipeline) Predict(X mat.Matrix) (result mat.Matrix, err error) {
	defer errors.Recover(&err, "Pipeline.Predict")

	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "Predict")
	}

	transformed, err := p.applySteps(X)
	if err != nil {
		return nil, err
	}
	return p.estimator.Predict(transformed)
}

// Score は変換器列を適用してから終端推定器で評価する
func (p *Pipeline) Score(X, y mat.Matrix) (float64, error) {
	if !p.IsFitted() {
		return 0, errors.NewNotFittedError("Pipeline", "Score")
	}

	transformed, err := p.applySteps(X)
	if err != nil {
		return 0, err
	}
	return p.estimator.Score(transformed, y)
}

func (p *Pipeline) applySteps(X mat.Matrix) (mat.Matrix, error) {
	current := X
	for _, step := range p.steps {
		transformed, err := step.Transformer.Transform(current)
		if err != nil {
			return nil, errors.Wrapf(err, "goknn: pipeline step %q transform failed", step.Name)
		}
		current = transformed
	}
	return current, nil
}

// StepNames returns the transformer step names in application order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name
	}
	return names
}

// NamedStep returns the transformer registered under name.
func (p *Pipeline) NamedStep(name string) (model.Transformer, bool) {
	for _, step := range p.steps {
		if step.Name == name {
			return step.Transformer, true
		}
	}
	return nil, false
}

// Estimator returns the final estimator.
func (p *Pipeline) Estimator() FinalEstimator {
	return p.estimator
}

// String returns a human-readable description of the pipeline.
func (p *Pipeline) String() string {
	return fmt.Sprintf("Pipeline(steps=%v)", p.StepNames())
}
