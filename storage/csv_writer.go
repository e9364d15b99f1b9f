package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"gmaps-scraper/models"
	"gmaps-scraper/utils"
)

// CSVWriter saves a business list as comma-separated text.
type CSVWriter struct {
	path string
}

func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Write saves a header row followed by one row per business.
// Creates the output directory if it does not exist.
func (w *CSVWriter) Write(list *models.BusinessList) error {
	if list.Len() == 0 {
		utils.Warn("No businesses to write")
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("could not create output dir: %w", err)
	}

	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(list.Columns()); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}
	if err := writer.WriteAll(list.Rows()); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}

	utils.Success("Saved %d businesses → %s", list.Len(), w.path)
	return nil
}
