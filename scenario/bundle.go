// Package scenario answers what-if questions against a trained model: take a
// country's observed indicators, apply additive deltas, and predict the
// resulting Gender Inequality Index with the exact transform statistics the
// model was trained with.
package scenario

import (
	"io"

	"github.com/giilab/giiscope/core/model"
	"github.com/giilab/giiscope/features"
	"github.com/giilab/giiscope/forest"
	"github.com/giilab/giiscope/pkg/errors"
)

// Bundle couples a fitted forest with the transformer fitted on the same
// training table. The two are persisted and loaded as one unit; a forest
// paired with foreign clip bounds would silently skew every prediction.
type Bundle struct {
	Forest    *forest.Regressor
	Transform *features.ClipLogTransformer

	// FeatureNames records the column order the forest was trained on.
	FeatureNames []string
}

// NewBundle wraps a fitted forest and transformer.
func NewBundle(rf *forest.Regressor, t *features.ClipLogTransformer) (*Bundle, error) {
	if rf == nil || !rf.IsFitted() {
		return nil, errors.NewNotFittedError("Regressor", "NewBundle")
	}
	if t == nil || !t.IsFitted() {
		return nil, errors.NewNotFittedError("ClipLogTransformer", "NewBundle")
	}
	names := make([]string, len(features.FeatureOrder))
	copy(names, features.FeatureOrder)
	return &Bundle{Forest: rf, Transform: t, FeatureNames: names}, nil
}

// Save writes the bundle to a file.
func (b *Bundle) Save(filename string) error {
	return model.SaveModel(b, filename)
}

// Write encodes the bundle to w.
func (b *Bundle) Write(w io.Writer) error {
	return model.WriteModel(b, w)
}

// Load reads a bundle from a file and verifies it is usable: both members
// present and marked fitted.
func Load(filename string) (*Bundle, error) {
	var b Bundle
	if err := model.LoadModel(&b, filename); err != nil {
		return nil, err
	}
	return restore(&b)
}

// Read decodes a bundle from r.
func Read(r io.Reader) (*Bundle, error) {
	var b Bundle
	if err := model.ReadModel(&b, r); err != nil {
		return nil, err
	}
	return restore(&b)
}

func restore(b *Bundle) (*Bundle, error) {
	if b.Forest == nil || len(b.Forest.Trees) == 0 || !b.Forest.IsFitted() {
		return nil, errors.New("scenario: bundle has no trained forest")
	}
	if b.Transform == nil || !b.Transform.IsFitted() {
		return nil, errors.New("scenario: bundle has no fitted transformer")
	}
	if err := checkFeatureNames(b.FeatureNames); err != nil {
		return nil, err
	}
	return b, nil
}

// checkFeatureNames rejects bundles trained against a different feature
// layout. Prediction vectors are built in FeatureOrder, so a forest trained
// on another ordering would read every column wrong.
func checkFeatureNames(names []string) error {
	if len(names) != len(features.FeatureOrder) {
		return errors.Newf("scenario: bundle has %d feature columns, want %d",
			len(names), len(features.FeatureOrder))
	}
	for i, want := range features.FeatureOrder {
		if names[i] != want {
			return errors.Newf("scenario: bundle feature %d is %q, want %q",
				i, names[i], want)
		}
	}
	return nil
}
