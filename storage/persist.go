package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gmaps-scraper/models"
	"gmaps-scraper/utils"
)

type PersistOptions struct {
	// ExcludeName drops any record whose name contains it. Empty disables.
	ExcludeName string
	// Tag identifies the run in log lines.
	Tag string
}

type PersistStats struct {
	Submitted  int
	Inserted   int
	Duplicates int
	Filtered   int
}

// Persist inserts every eligible record of list into store, one row at a
// time. Records named with opts.ExcludeName or without an address are never
// submitted. Duplicates are skipped; any other insert error stops the pass
// and is returned along with the stats so far. Rows inserted before the
// failure stay committed.
func Persist(ctx context.Context, store Store, list *models.BusinessList, opts PersistOptions) (PersistStats, error) {
	var stats PersistStats

	for i, b := range list.Items() {
		if !eligible(b, opts.ExcludeName) {
			stats.Filtered++
			continue
		}

		stats.Submitted++
		err := store.Insert(ctx, b)
		switch {
		case err == nil:
			stats.Inserted++
		case errors.Is(err, ErrDuplicate):
			stats.Duplicates++
			utils.Debug("[%s] duplicate skipped: %s", opts.Tag, b.Name)
		default:
			return stats, fmt.Errorf("insert failed at record %d (%s): %w", i, b.Name, err)
		}
	}

	utils.Success("[%s] Stored %d new | %d duplicates | %d filtered",
		opts.Tag, stats.Inserted, stats.Duplicates, stats.Filtered)
	return stats, nil
}

func eligible(b models.Business, excludeName string) bool {
	if excludeName != "" && strings.Contains(b.Name, excludeName) {
		return false
	}
	return strings.TrimSpace(b.Address) != ""
}
