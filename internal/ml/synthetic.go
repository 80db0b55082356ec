package ml

import (
	"math"

	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// syntheticGenerator samples plausible feature vectors with labels
// from a logistic model over a weighted quality score. It backfills
// training data while real application outcomes are still sparse.
type syntheticGenerator struct {
	rng *exprand.Rand

	skillRatio   distuv.Beta
	reqCount     distuv.Poisson
	proficiency  distuv.Normal
	gap          distuv.LogNormal
	expDelta     distuv.Normal
	cgpa         distuv.Normal
	projects     distuv.Poisson
	certs        distuv.Poisson
	completeness distuv.Beta
	passRate     distuv.Beta
	textSim      distuv.Beta
	noise        distuv.Normal
}

const (
	logisticSteepness = 12.0
	logisticMidpoint  = 0.45
	labelNoiseStdDev  = 0.08
)

func newSyntheticGenerator(seed uint64) *syntheticGenerator {
	src := exprand.NewSource(seed)
	rng := exprand.New(src)
	return &syntheticGenerator{
		rng:          rng,
		skillRatio:   distuv.Beta{Alpha: 2.2, Beta: 1.8, Src: src},
		reqCount:     distuv.Poisson{Lambda: 6, Src: src},
		proficiency:  distuv.Normal{Mu: 6.0, Sigma: 1.8, Src: src},
		gap:          distuv.LogNormal{Mu: 0.2, Sigma: 0.7, Src: src},
		expDelta:     distuv.Normal{Mu: 0.5, Sigma: 2.0, Src: src},
		cgpa:         distuv.Normal{Mu: 7.2, Sigma: 1.2, Src: src},
		projects:     distuv.Poisson{Lambda: 3, Src: src},
		certs:        distuv.Poisson{Lambda: 1.5, Src: src},
		completeness: distuv.Beta{Alpha: 4, Beta: 2, Src: src},
		passRate:     distuv.Beta{Alpha: 3, Beta: 1.5, Src: src},
		textSim:      distuv.Beta{Alpha: 2, Beta: 4, Src: src},
		noise:        distuv.Normal{Mu: 0, Sigma: labelNoiseStdDev, Src: src},
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sample draws one feature vector plus its hire label.
func (g *syntheticGenerator) sample() (FeatureVector, int) {
	var v FeatureVector

	reqCount := math.Max(1, g.reqCount.Rand())
	ratio := clamp(g.skillRatio.Rand(), 0, 1)
	matched := math.Round(ratio * reqCount)
	ratio = matched / reqCount

	v[0] = ratio
	v[1] = matched
	v[2] = reqCount
	if missing := reqCount - matched; missing > 0 && g.rng.Float64() < 0.4 {
		v[3] = math.Min(missing, math.Round(g.rng.Float64()*2)+1)
	}

	if matched > 0 {
		avgProf := clamp(g.proficiency.Rand(), 0, 10)
		v[4] = avgProf
		v[5] = clamp(avgProf-math.Abs(g.noise.Rand())*20, 0, avgProf)
		avgGap := clamp(g.gap.Rand(), 0, 10)
		v[6] = avgGap
		v[7] = clamp(avgGap*(1+g.rng.Float64()), avgGap, 10)
	}
	v[8] = clamp(g.noise.Rand()*10, -3, 3)

	delta := g.expDelta.Rand()
	v[9] = delta
	required := math.Max(0.5, 2+g.noise.Rand()*10)
	v[10] = clamp((required+delta)/required, 0, experienceRatioCap)
	if delta >= 0 {
		v[11] = 1
	}

	v[12] = float64(1 + g.rng.Intn(4))
	v[13] = clamp(g.cgpa.Rand(), 0, 10) / 10.0
	v[14] = g.projects.Rand()
	v[15] = g.certs.Rand()
	if g.rng.Float64() < 0.3 {
		v[16] = math.Round(g.rng.Float64() * 2)
	}
	if g.rng.Float64() < 0.6 {
		v[17] = 1
	}
	v[18] = clamp(g.completeness.Rand(), 0, 1)
	v[19] = clamp(g.passRate.Rand(), 0, 1)
	v[20] = clamp(v[19]*0.8+g.rng.Float64()*0.2, 0, 1)
	v[21] = math.Round(matched * g.rng.Float64())
	v[22] = clamp(g.textSim.Rand(), 0, 1)

	return v, g.label(v)
}

// label scores the vector with fixed weights, squashes through a
// sigmoid and draws a Bernoulli outcome. Noise keeps the classes from
// being linearly separable.
func (g *syntheticGenerator) label(v FeatureVector) int {
	z := 0.35*v[0] +
		0.15*(v[4]/10.0) +
		-0.10*(v[6]/10.0) +
		-0.08*math.Min(v[3], 3)/3.0 +
		0.10*v[11] +
		0.05*v[13] +
		0.05*v[18] +
		0.10*v[19] +
		0.05*math.Min(v[21], 5)/5.0 +
		0.15*v[22] +
		g.noise.Rand()

	p := 1.0 / (1.0 + math.Exp(-logisticSteepness*(z-logisticMidpoint)))
	b := distuv.Bernoulli{P: clamp(p, 0, 1), Src: g.rng}
	return int(b.Rand())
}

// GenerateSynthetic produces n labeled rows from a seeded generator,
// so a given seed always yields the same dataset.
func GenerateSynthetic(n int, seed uint64) ([]FeatureVector, []int) {
	g := newSyntheticGenerator(seed)
	features := make([]FeatureVector, n)
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		features[i], labels[i] = g.sample()
	}
	return features, labels
}
