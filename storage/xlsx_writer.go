package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gmaps-scraper/models"
	"gmaps-scraper/utils"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "businesses"

// XLSXWriter saves a business list as a spreadsheet with a single sheet.
type XLSXWriter struct {
	path string
}

func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{path: path}
}

func (w *XLSXWriter) Write(list *models.BusinessList) error {
	if list.Len() == 0 {
		utils.Warn("No businesses to write")
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("could not create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("xlsx sheet error: %w", err)
	}

	if err := setRow(f, 1, list.Columns()); err != nil {
		return err
	}
	for i, row := range list.Rows() {
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("could not save xlsx: %w", err)
	}

	utils.Success("Saved %d businesses → %s", list.Len(), w.path)
	return nil
}

func setRow(f *excelize.File, n int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return fmt.Errorf("xlsx cell error: %w", err)
	}

	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
		return fmt.Errorf("xlsx write error at row %d: %w", n, err)
	}
	return nil
}
