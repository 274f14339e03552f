package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを特徴行列Xとターゲットyで学習させる
	Fit(X mat.Matrix, y *mat.VecDense) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (*mat.VecDense, error)
}

// Scorer は決定係数（R²）によるモデル評価のインターフェース
type Scorer interface {
	// Score はXに対する予測とyの決定係数を計算する
	Score(X mat.Matrix, y *mat.VecDense) (float64, error)
}

// Regressor は学習・予測・評価を全て備えた回帰モデルのインターフェース
type Regressor interface {
	Fitter
	Predictor
	Scorer
}
