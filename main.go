package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"gmaps-scraper/config"
	"gmaps-scraper/locations"
	"gmaps-scraper/models"
	"gmaps-scraper/scraper/gmaps"
	"gmaps-scraper/services"
	"gmaps-scraper/storage"
	"gmaps-scraper/utils"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

type flags struct {
	configPath string
	search     string
	total      int
	location   string
	cities     string
	export     string
	headless   bool
	set        map[string]bool
}

func parseFlags() *flags {
	f := &flags{}
	fs := flag.CommandLine

	fs.StringVar(&f.configPath, "config", "config.yaml", "path to YAML config file (optional)")
	fs.StringVar(&f.search, "s", "", "search term, e.g. dentist")
	fs.StringVar(&f.search, "search", "", "search term, e.g. dentist")
	fs.IntVar(&f.total, "t", 0, "target number of listings per location (default 120)")
	fs.IntVar(&f.total, "total", 0, "target number of listings per location (default 120)")
	fs.StringVar(&f.location, "l", "", "single location to search instead of the cities table")
	fs.StringVar(&f.location, "location", "", "single location to search instead of the cities table")
	fs.StringVar(&f.cities, "c", "", "path to the cities CSV (city, state_name columns)")
	fs.StringVar(&f.cities, "cities", "", "path to the cities CSV (city, state_name columns)")
	fs.StringVar(&f.export, "o", "", "also export each run to <prefix>-<n>.csv and .xlsx")
	fs.StringVar(&f.export, "export", "", "also export each run to <prefix>-<n>.csv and .xlsx")
	fs.BoolVar(&f.headless, "headless", true, "run Chrome headless")
	flag.Parse()

	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f
}

// apply copies explicitly given flags onto cfg; flags win over file and env.
func (f *flags) apply(cfg *config.Config) {
	if f.set["s"] || f.set["search"] {
		cfg.Search = f.search
	}
	if f.set["t"] || f.set["total"] {
		cfg.Total = f.total
	}
	if f.set["l"] || f.set["location"] {
		cfg.Location = f.location
	}
	if f.set["c"] || f.set["cities"] {
		cfg.CitiesPath = f.cities
	}
	if f.set["o"] || f.set["export"] {
		cfg.ExportPath = f.export
	}
	if f.set["headless"] {
		cfg.Headless = f.headless
	}
}

func main() {
	if err := run(); err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}
}

func run() error {
	f := parseFlags()

	cfg := config.DefaultConfig()
	if err := cfg.LoadFile(f.configPath); err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	f.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	utils.SetLevel(utils.ParseLevel(cfg.LogLevel))

	var locs []locations.Location
	if cfg.Location != "" {
		locs = locations.Single(cfg.Location)
	} else {
		var err error
		if locs, err = locations.Load(cfg.CitiesPath); err != nil {
			return err
		}
	}

	utils.Info("Scraper starting | search=%q total=%d locations=%d db=%s",
		cfg.Search, cfg.Total, len(locs), cfg.DBDriver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("could not connect to %s: %w", cfg.DBDriver, err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	scraper, err := gmaps.NewScraper(cfg)
	if err != nil {
		return fmt.Errorf("could not start scraper: %w", err)
	}
	defer scraper.Close()

	limiter := rate.NewLimiter(rate.Every(cfg.RunInterval), 1)
	var totals storage.PersistStats
	extracted := 0

	for i, loc := range locs {
		if err := limiter.Wait(ctx); err != nil {
			break
		}

		job := models.SearchJob{
			Index:    i + 1,
			Query:    locations.Query(cfg.Search, loc),
			Search:   cfg.Search,
			Location: loc.String(),
		}
		tag := uuid.NewString()[:8]
		utils.Section(fmt.Sprintf("%d/%d %s [%s]", job.Index, len(locs), job.Query, tag))

		list, result, err := scraper.Search(ctx, job)
		if err != nil {
			utils.Error("[%s] Search failed after %d listings: %v", tag, list.Len(), err)
			if ctx.Err() != nil {
				break
			}
		}
		if list.Len() == 0 {
			utils.Warn("[%s] No listings for %q", tag, job.Query)
			continue
		}
		extracted += list.Len()

		if cfg.ExportPath != "" {
			prefix := fmt.Sprintf("%s-%d", filepath.Clean(cfg.ExportPath), job.Index)
			if err := storage.ExportAll(list, prefix); err != nil {
				utils.Error("[%s] Export failed: %v", tag, err)
			}
		}

		stats, err := storage.Persist(ctx, store, list, storage.PersistOptions{
			ExcludeName: cfg.ExcludeName,
			Tag:         tag,
		})
		totals.Submitted += stats.Submitted
		totals.Inserted += stats.Inserted
		totals.Duplicates += stats.Duplicates
		totals.Filtered += stats.Filtered
		if err != nil {
			return fmt.Errorf("failed to save businesses for %q: %w", job.Query, err)
		}

		services.PrintReport(os.Stdout, services.GenerateReport(job.Query, result.Outcome.String(), list))
	}

	printSummary(len(locs), extracted, totals)
	return nil
}

func printSummary(locationCount, extracted int, totals storage.PersistStats) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════╗")
	fmt.Println("║                SCRAPE COMPLETE               ║")
	fmt.Println("╠══════════════════════════════════════════════╣")
	fmt.Printf("║  Locations      : %-26d ║\n", locationCount)
	fmt.Printf("║  Extracted      : %-26d ║\n", extracted)
	fmt.Printf("║  Stored (new)   : %-26d ║\n", totals.Inserted)
	fmt.Printf("║  Duplicates     : %-26d ║\n", totals.Duplicates)
	fmt.Printf("║  Filtered       : %-26d ║\n", totals.Filtered)
	fmt.Println("╚══════════════════════════════════════════════╝")
	fmt.Println()
}
