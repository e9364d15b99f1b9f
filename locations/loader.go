// Package locations reads the city/state table that drives one search run
// per row.
package locations

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	ErrMissingColumn = errors.New("cities table is missing a required column")
	ErrNoLocations   = errors.New("cities table has no rows")
)

type Location struct {
	City  string
	State string
}

func (l Location) String() string {
	return strings.TrimSpace(l.City + " " + l.State)
}

// Query joins the search term and the location the way it is typed into
// the Maps search box, e.g. "dentist Austin Texas".
func Query(search string, l Location) string {
	return strings.TrimSpace(strings.TrimSpace(search) + " " + l.String())
}

// Single wraps a free-text location, as given on the command line.
func Single(location string) []Location {
	return []Location{{City: strings.TrimSpace(location)}}
}

// Load reads a CSV file with a header row containing at least "city" and
// "state_name".
func Load(path string) ([]Location, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open cities table: %w", err)
	}
	defer f.Close()

	locs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return locs, nil
}

// Read parses the cities table from r. Rows keep file order; rows with a
// blank city are skipped.
func Read(r io.Reader) ([]Location, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoLocations
	}
	if err != nil {
		return nil, fmt.Errorf("could not read header: %w", err)
	}

	cityIdx, stateIdx := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case "city":
			cityIdx = i
		case "state_name":
			stateIdx = i
		}
	}
	if cityIdx < 0 {
		return nil, fmt.Errorf("%w: city", ErrMissingColumn)
	}
	if stateIdx < 0 {
		return nil, fmt.Errorf("%w: state_name", ErrMissingColumn)
	}

	var locs []Location
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read row: %w", err)
		}

		loc := Location{
			City:  field(record, cityIdx),
			State: field(record, stateIdx),
		}
		if loc.City == "" {
			continue
		}
		locs = append(locs, loc)
	}

	if len(locs) == 0 {
		return nil, ErrNoLocations
	}
	return locs, nil
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
