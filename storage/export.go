package storage

import (
	"errors"
	"fmt"
	"strings"

	"gmaps-scraper/models"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Export writes list to path in the given format.
func Export(list *models.BusinessList, format Format, path string) error {
	switch Format(strings.ToLower(string(format))) {
	case FormatCSV:
		return NewCSVWriter(path).Write(list)
	case FormatXLSX:
		return NewXLSXWriter(path).Write(list)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ExportAll writes list next to prefix in every supported format, e.g.
// output/dentist-1.csv and output/dentist-1.xlsx.
func ExportAll(list *models.BusinessList, prefix string) error {
	for _, format := range []Format{FormatCSV, FormatXLSX} {
		if err := Export(list, format, prefix+"."+string(format)); err != nil {
			return err
		}
	}
	return nil
}
