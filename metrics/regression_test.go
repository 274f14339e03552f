package metrics

import (
	"math"
	"testing"

	"github.com/giilab/giiscope/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func TestMSE(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	yPred := mat.NewVecDense(4, []float64{1, 2, 3, 4})

	mse, err := MSE(yTrue, yPred)
	if err != nil {
		t.Fatalf("MSE failed: %v", err)
	}
	if mse != 0 {
		t.Errorf("MSE of perfect prediction = %f, want 0", mse)
	}

	yPred2 := mat.NewVecDense(4, []float64{2, 3, 4, 5})
	mse, err = MSE(yTrue, yPred2)
	if err != nil {
		t.Fatalf("MSE failed: %v", err)
	}
	if mse != 1 {
		t.Errorf("MSE of off-by-one prediction = %f, want 1", mse)
	}
}

func TestMAE(t *testing.T) {
	yTrue := mat.NewVecDense(3, []float64{0.1, 0.5, 0.9})
	yPred := mat.NewVecDense(3, []float64{0.2, 0.4, 0.9})

	mae, err := MAE(yTrue, yPred)
	if err != nil {
		t.Fatalf("MAE failed: %v", err)
	}
	want := (0.1 + 0.1 + 0.0) / 3
	if math.Abs(mae-want) > 1e-12 {
		t.Errorf("MAE = %f, want %f", mae, want)
	}
}

func TestR2ScorePerfect(t *testing.T) {
	yTrue := mat.NewVecDense(5, []float64{0.1, 0.2, 0.3, 0.4, 0.5})
	yPred := mat.NewVecDense(5, []float64{0.1, 0.2, 0.3, 0.4, 0.5})

	r2, err := R2Score(yTrue, yPred)
	if err != nil {
		t.Fatalf("R2Score failed: %v", err)
	}
	if math.Abs(r2-1.0) > 1e-12 {
		t.Errorf("R2 of perfect prediction = %f, want 1", r2)
	}
}

// A model worse than predicting the mean has negative R2. This is expected
// output for a weak model, not an error.
func TestR2ScoreNegative(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{0.1, 0.2, 0.3, 0.4})
	yPred := mat.NewVecDense(4, []float64{0.4, 0.3, 0.2, 0.1})

	r2, err := R2Score(yTrue, yPred)
	if err != nil {
		t.Fatalf("R2Score failed: %v", err)
	}
	if r2 >= 0 {
		t.Errorf("R2 of anti-correlated prediction = %f, want negative", r2)
	}
}

// R2 is computed against the mean of yTrue itself, so a mean-only predictor
// scores exactly zero.
func TestR2ScoreMeanPredictor(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{0.1, 0.2, 0.3, 0.4})
	yPred := mat.NewVecDense(4, []float64{0.25, 0.25, 0.25, 0.25})

	r2, err := R2Score(yTrue, yPred)
	if err != nil {
		t.Fatalf("R2Score failed: %v", err)
	}
	if math.Abs(r2) > 1e-12 {
		t.Errorf("R2 of mean predictor = %f, want 0", r2)
	}
}

func TestR2ScoreZeroVariance(t *testing.T) {
	yTrue := mat.NewVecDense(3, []float64{0.3, 0.3, 0.3})
	yPred := mat.NewVecDense(3, []float64{0.3, 0.3, 0.3})

	_, err := R2Score(yTrue, yPred)
	if err == nil {
		t.Fatal("expected error for zero-variance target")
	}
	if !errors.Is(err, errors.ErrZeroVariance) {
		t.Errorf("error = %v, want ErrZeroVariance", err)
	}
}

func TestDimensionMismatch(t *testing.T) {
	yTrue := mat.NewVecDense(3, []float64{1, 2, 3})
	yPred := mat.NewVecDense(2, []float64{1, 2})

	if _, err := MSE(yTrue, yPred); err == nil {
		t.Error("MSE accepted mismatched lengths")
	}
	if _, err := R2Score(yTrue, yPred); err == nil {
		t.Error("R2Score accepted mismatched lengths")
	}
}
