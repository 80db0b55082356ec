package ml

import "gonum.org/v1/gonum/stat"

// StandardScaler standardizes each feature column to zero mean and
// unit variance. Fields are exported for gob round-tripping.
type StandardScaler struct {
	Means   [FeatureCount]float64
	StdDevs [FeatureCount]float64
}

// FitScaler computes per-column statistics over the training rows.
// Zero-variance columns get a standard deviation of 1 so they scale to
// a constant instead of NaN.
func FitScaler(rows []FeatureVector) *StandardScaler {
	s := &StandardScaler{}
	if len(rows) == 0 {
		for j := range s.StdDevs {
			s.StdDevs[j] = 1
		}
		return s
	}

	col := make([]float64, len(rows))
	for j := 0; j < FeatureCount; j++ {
		for i := range rows {
			col[i] = rows[i][j]
		}
		s.Means[j] = stat.Mean(col, nil)
		s.StdDevs[j] = stat.StdDev(col, nil)
		if s.StdDevs[j] == 0 || s.StdDevs[j] != s.StdDevs[j] {
			s.StdDevs[j] = 1
		}
	}
	return s
}

// Transform returns a scaled copy of v.
func (s *StandardScaler) Transform(v FeatureVector) FeatureVector {
	var out FeatureVector
	for j := 0; j < FeatureCount; j++ {
		out[j] = (v[j] - s.Means[j]) / s.StdDevs[j]
	}
	return out
}

// TransformAll scales every row.
func (s *StandardScaler) TransformAll(rows []FeatureVector) []FeatureVector {
	out := make([]FeatureVector, len(rows))
	for i := range rows {
		out[i] = s.Transform(rows[i])
	}
	return out
}
