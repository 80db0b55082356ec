package ml

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact file names inside the configured model directory.
const (
	ModelFileName  = "model.gob"
	ScalerFileName = "scaler.gob"
	ReportFileName = "report.json"
)

// writeAtomic writes to a temp file in the target directory and
// renames it into place, so readers never see a partial artifact.
func writeAtomic(path string, write func(*os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// SaveArtifacts persists the trained forest, scaler and report.
func SaveArtifacts(dir string, forest *RandomForest, scaler *StandardScaler, report *TrainingReport) error {
	err := writeAtomic(filepath.Join(dir, ModelFileName), func(f *os.File) error {
		return gob.NewEncoder(f).Encode(forest)
	})
	if err != nil {
		return fmt.Errorf("save model: %w", err)
	}

	err = writeAtomic(filepath.Join(dir, ScalerFileName), func(f *os.File) error {
		return gob.NewEncoder(f).Encode(scaler)
	})
	if err != nil {
		return fmt.Errorf("save scaler: %w", err)
	}

	err = writeAtomic(filepath.Join(dir, ReportFileName), func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	})
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// LoadArtifacts reads the forest and scaler back from dir.
func LoadArtifacts(dir string) (*RandomForest, *StandardScaler, error) {
	modelFile, err := os.Open(filepath.Join(dir, ModelFileName))
	if err != nil {
		return nil, nil, fmt.Errorf("open model: %w", err)
	}
	defer modelFile.Close()

	var forest RandomForest
	if err := gob.NewDecoder(modelFile).Decode(&forest); err != nil {
		return nil, nil, fmt.Errorf("decode model: %w", err)
	}

	scalerFile, err := os.Open(filepath.Join(dir, ScalerFileName))
	if err != nil {
		return nil, nil, fmt.Errorf("open scaler: %w", err)
	}
	defer scalerFile.Close()

	var scaler StandardScaler
	if err := gob.NewDecoder(scalerFile).Decode(&scaler); err != nil {
		return nil, nil, fmt.Errorf("decode scaler: %w", err)
	}

	return &forest, &scaler, nil
}

// LoadReport reads the last training report, for the admin surface.
func LoadReport(dir string) (*TrainingReport, error) {
	data, err := os.ReadFile(filepath.Join(dir, ReportFileName))
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	var report TrainingReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}
