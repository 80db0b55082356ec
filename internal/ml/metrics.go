package ml

import "sort"

// Metrics summarizes binary-classification quality on a holdout set.
type Metrics struct {
	Accuracy  float64            `json:"accuracy"`
	Precision float64            `json:"precision"`
	Recall    float64            `json:"recall"`
	F1        float64            `json:"f1"`
	AUC       float64            `json:"auc"`
	Confusion ConfusionMatrix    `json:"confusion_matrix"`
	PerClass  map[string]Summary `json:"per_class"`
}

type ConfusionMatrix struct {
	TruePositives  int `json:"tp"`
	TrueNegatives  int `json:"tn"`
	FalsePositives int `json:"fp"`
	FalseNegatives int `json:"fn"`
}

type Summary struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Evaluate scores predicted probabilities against true labels using a
// 0.5 decision threshold for the thresholded metrics.
func Evaluate(probas []float64, labels []int) Metrics {
	var cm ConfusionMatrix
	for i, p := range probas {
		predicted := 0
		if p >= 0.5 {
			predicted = 1
		}
		switch {
		case predicted == 1 && labels[i] == 1:
			cm.TruePositives++
		case predicted == 0 && labels[i] == 0:
			cm.TrueNegatives++
		case predicted == 1 && labels[i] == 0:
			cm.FalsePositives++
		default:
			cm.FalseNegatives++
		}
	}

	tp := float64(cm.TruePositives)
	tn := float64(cm.TrueNegatives)
	fp := float64(cm.FalsePositives)
	fn := float64(cm.FalseNegatives)

	precision := safeDiv(tp, tp+fp)
	recall := safeDiv(tp, tp+fn)

	negPrecision := safeDiv(tn, tn+fn)
	negRecall := safeDiv(tn, tn+fp)

	m := Metrics{
		Accuracy:  safeDiv(tp+tn, tp+tn+fp+fn),
		Precision: precision,
		Recall:    recall,
		F1:        safeDiv(2*precision*recall, precision+recall),
		AUC:       rankAUC(probas, labels),
		Confusion: cm,
		PerClass: map[string]Summary{
			"hired": {
				Precision: precision,
				Recall:    recall,
				F1:        safeDiv(2*precision*recall, precision+recall),
				Support:   cm.TruePositives + cm.FalseNegatives,
			},
			"rejected": {
				Precision: negPrecision,
				Recall:    negRecall,
				F1:        safeDiv(2*negPrecision*negRecall, negPrecision+negRecall),
				Support:   cm.TrueNegatives + cm.FalsePositives,
			},
		},
	}
	return m
}

// rankAUC computes ROC AUC via the Mann-Whitney rank statistic, with
// midranks for tied probabilities.
func rankAUC(probas []float64, labels []int) float64 {
	n := len(probas)
	if n == 0 {
		return 0
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return probas[idx[a]] < probas[idx[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && probas[idx[j+1]] == probas[idx[i]] {
			j++
		}
		mid := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[idx[k]] = mid
		}
		i = j + 1
	}

	var posRankSum float64
	var nPos, nNeg float64
	for i, y := range labels {
		if y == 1 {
			posRankSum += ranks[i]
			nPos++
		} else {
			nNeg++
		}
	}
	if nPos == 0 || nNeg == 0 {
		return 0.5
	}
	return (posRankSum - nPos*(nPos+1)/2) / (nPos * nNeg)
}
