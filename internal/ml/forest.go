package ml

import (
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"
)

// Random forest classifier for the hire/reject label. Hand rolled on
// purpose: the model is small (hundreds to low thousands of rows) and
// the gob artifact keeps serving dependency free.

const (
	DefaultNumTrees     = 200
	DefaultMaxDepth     = 12
	DefaultMinSplit     = 5
	DefaultMinLeaf      = 2
	defaultForestSeed   = 1337
	minGiniImprovement  = 1e-7
	candidateThresholds = 32
)

// TreeNode fields are exported so gob can encode trained trees.
type TreeNode struct {
	Feature   int
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode
	Leaf      bool
	Proba     float64 // weighted positive fraction at a leaf
}

type RandomForest struct {
	Trees        []*TreeNode
	NumTrees     int
	MaxDepth     int
	MinSplit     int
	MinLeaf      int
	ClassWeights [2]float64
	Importances  [FeatureCount]float64
}

type forestTrainer struct {
	rows    []FeatureVector
	labels  []int
	weights [2]float64
	cfg     *RandomForest
}

// NewRandomForest returns a forest with the default hyperparameters.
func NewRandomForest() *RandomForest {
	return &RandomForest{
		NumTrees: DefaultNumTrees,
		MaxDepth: DefaultMaxDepth,
		MinSplit: DefaultMinSplit,
		MinLeaf:  DefaultMinLeaf,
	}
}

// Fit trains the forest on the given rows. Trees grow on bootstrap
// samples with sqrt-feature subsampling, in parallel across cores.
// Class weights are balanced (n / (2 * class count)) so a skewed label
// mix does not collapse predictions to the majority class.
func (f *RandomForest) Fit(rows []FeatureVector, labels []int) {
	counts := [2]int{}
	for _, y := range labels {
		counts[y]++
	}
	n := float64(len(labels))
	for c := 0; c < 2; c++ {
		if counts[c] > 0 {
			f.ClassWeights[c] = n / (2.0 * float64(counts[c]))
		} else {
			f.ClassWeights[c] = 1.0
		}
	}

	tr := &forestTrainer{rows: rows, labels: labels, weights: f.ClassWeights, cfg: f}

	f.Trees = make([]*TreeNode, f.NumTrees)
	importances := make([][FeatureCount]float64, f.NumTrees)

	workers := runtime.GOMAXPROCS(0)
	if workers > f.NumTrees {
		workers = f.NumTrees
	}
	var wg sync.WaitGroup
	work := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range work {
				rng := rand.New(rand.NewSource(defaultForestSeed + int64(t)))
				idx := tr.bootstrap(rng)
				f.Trees[t] = tr.grow(idx, 0, rng, &importances[t])
			}
		}()
	}
	for t := 0; t < f.NumTrees; t++ {
		work <- t
	}
	close(work)
	wg.Wait()

	var total float64
	for t := range importances {
		for j := 0; j < FeatureCount; j++ {
			f.Importances[j] += importances[t][j]
		}
	}
	for j := 0; j < FeatureCount; j++ {
		total += f.Importances[j]
	}
	if total > 0 {
		for j := 0; j < FeatureCount; j++ {
			f.Importances[j] /= total
		}
	}
}

func (tr *forestTrainer) bootstrap(rng *rand.Rand) []int {
	n := len(tr.rows)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = rng.Intn(n)
	}
	return idx
}

// weightedCounts sums class weights over the subset.
func (tr *forestTrainer) weightedCounts(idx []int) (w0, w1 float64) {
	for _, i := range idx {
		if tr.labels[i] == 1 {
			w1 += tr.weights[1]
		} else {
			w0 += tr.weights[0]
		}
	}
	return w0, w1
}

func gini(w0, w1 float64) float64 {
	total := w0 + w1
	if total == 0 {
		return 0
	}
	p0 := w0 / total
	p1 := w1 / total
	return 1 - p0*p0 - p1*p1
}

func (tr *forestTrainer) leaf(idx []int) *TreeNode {
	w0, w1 := tr.weightedCounts(idx)
	proba := 0.5
	if w0+w1 > 0 {
		proba = w1 / (w0 + w1)
	}
	return &TreeNode{Leaf: true, Proba: proba}
}

func (tr *forestTrainer) grow(idx []int, depth int, rng *rand.Rand, imp *[FeatureCount]float64) *TreeNode {
	w0, w1 := tr.weightedCounts(idx)
	parentGini := gini(w0, w1)

	if depth >= tr.cfg.MaxDepth || len(idx) < tr.cfg.MinSplit || parentGini == 0 {
		return tr.leaf(idx)
	}

	feature, threshold, gain := tr.bestSplit(idx, parentGini, w0+w1, rng)
	if gain < minGiniImprovement {
		return tr.leaf(idx)
	}

	var left, right []int
	for _, i := range idx {
		if tr.rows[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < tr.cfg.MinLeaf || len(right) < tr.cfg.MinLeaf {
		return tr.leaf(idx)
	}

	imp[feature] += gain * float64(len(idx))

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      tr.grow(left, depth+1, rng, imp),
		Right:     tr.grow(right, depth+1, rng, imp),
	}
}

// bestSplit scans a sqrt-sized random feature subset. For each feature
// it tries up to candidateThresholds midpoints between sorted values.
func (tr *forestTrainer) bestSplit(idx []int, parentGini, parentWeight float64, rng *rand.Rand) (int, float64, float64) {
	nFeatures := int(math.Ceil(math.Sqrt(FeatureCount)))
	perm := rng.Perm(FeatureCount)[:nFeatures]

	bestFeature := -1
	bestThreshold := 0.0
	bestGain := 0.0

	values := make([]float64, 0, len(idx))
	for _, feature := range perm {
		values = values[:0]
		for _, i := range idx {
			values = append(values, tr.rows[i][feature])
		}
		sort.Float64s(values)

		step := 1
		if len(values) > candidateThresholds {
			step = len(values) / candidateThresholds
		}
		prev := math.Inf(-1)
		for k := step; k < len(values); k += step {
			if values[k] == values[k-1] || values[k] == prev {
				continue
			}
			threshold := (values[k] + values[k-1]) / 2
			prev = values[k]

			var lw0, lw1, rw0, rw1 float64
			for _, i := range idx {
				w := tr.weights[tr.labels[i]]
				if tr.rows[i][feature] <= threshold {
					if tr.labels[i] == 1 {
						lw1 += w
					} else {
						lw0 += w
					}
				} else {
					if tr.labels[i] == 1 {
						rw1 += w
					} else {
						rw0 += w
					}
				}
			}

			lw := lw0 + lw1
			rw := rw0 + rw1
			if lw == 0 || rw == 0 {
				continue
			}
			childGini := (lw*gini(lw0, lw1) + rw*gini(rw0, rw1)) / parentWeight
			gain := parentGini - childGini
			if gain > bestGain {
				bestGain = gain
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}
	return bestFeature, bestThreshold, bestGain
}

func (n *TreeNode) predict(v FeatureVector) float64 {
	node := n
	for !node.Leaf {
		if v[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Proba
}

// PredictProba averages leaf probabilities over all trees.
func (f *RandomForest) PredictProba(v FeatureVector) float64 {
	if len(f.Trees) == 0 {
		return 0.5
	}
	sum := 0.0
	for _, tree := range f.Trees {
		sum += tree.predict(v)
	}
	return sum / float64(len(f.Trees))
}

// Predict thresholds the probability at 0.5.
func (f *RandomForest) Predict(v FeatureVector) int {
	if f.PredictProba(v) >= 0.5 {
		return 1
	}
	return 0
}

// FeatureImportances pairs importance scores with feature names,
// sorted descending.
func (f *RandomForest) FeatureImportances() []FeatureImportance {
	out := make([]FeatureImportance, FeatureCount)
	for j := 0; j < FeatureCount; j++ {
		out[j] = FeatureImportance{Name: FeatureNames[j], Score: f.Importances[j]}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	return out
}

type FeatureImportance struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}
