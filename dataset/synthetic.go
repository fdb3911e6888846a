package dataset

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// MakeRegression generates a random linear regression problem: X is
// nSamples×nFeatures standard-normal, y = X·w + noise·ε for a fixed random
// coefficient vector w. The same seed always produces the same dataset.
func MakeRegression(nSamples, nFeatures int, noise float64, seed uint64) (*mat.Dense, *mat.Dense) {
	r := rand.New(rand.NewPCG(seed, seed))

	coef := make([]float64, nFeatures)
	for j := range coef {
		coef[j] = r.NormFloat64() * 10
	}

	X := mat.NewDense(nSamples, nFeatures, nil)
	y := mat.NewDense(nSamples, 1, nil)
	for i := 0; i < nSamples; i++ {
		target := 0.0
		for j := 0; j < nFeatures; j++ {
			v := r.NormFloat64()
			X.Set(i, j, v)
			target += v * coef[j]
		}
		y.Set(i, 0, target+noise*r.NormFloat64())
	}
	return X, y
}
