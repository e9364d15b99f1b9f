package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gmaps-scraper/models"

	"github.com/mattn/go-runewidth"
)

// Report summarises what a run extracted, field by field.
type Report struct {
	Query          string
	Outcome        string
	Total          int
	WithAddress    int
	WithPhone      int
	WithWebsite    int
	ListingsByCity map[string]int
}

func GenerateReport(query, outcome string, list *models.BusinessList) Report {
	report := Report{
		Query:          query,
		Outcome:        outcome,
		ListingsByCity: make(map[string]int),
	}

	for _, b := range list.Items() {
		report.Total++
		if strings.TrimSpace(b.Address) != "" {
			report.WithAddress++
		}
		if strings.TrimSpace(b.PhoneNumber) != "" {
			report.WithPhone++
		}
		if strings.TrimSpace(b.Website) != "" {
			report.WithWebsite++
		}
		report.ListingsByCity[normalizeCity(b.City)]++
	}

	return report
}

func PrintReport(w io.Writer, report Report) {
	summary := [][]string{
		{"Query", report.Query},
		{"Scroll outcome", report.Outcome},
		{"Listings extracted", fmt.Sprint(report.Total)},
		{"With address", fmt.Sprint(report.WithAddress)},
		{"With phone", fmt.Sprint(report.WithPhone)},
		{"With website", fmt.Sprint(report.WithWebsite)},
	}
	fmt.Fprintln(w)
	writeTable(w, []string{"Run", ""}, summary)

	if len(report.ListingsByCity) == 0 {
		return
	}

	var byCity [][]string
	for _, city := range sortedKeys(report.ListingsByCity) {
		byCity = append(byCity, []string{city, fmt.Sprint(report.ListingsByCity[city])})
	}
	fmt.Fprintln(w)
	writeTable(w, []string{"City", "Count"}, byCity)
}

// writeTable draws a boxed table. Cells are padded by display width so
// city names with wide or combining characters keep the borders aligned.
func writeTable(w io.Writer, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if cw := runewidth.StringWidth(row[i]); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	border := func(left, mid, right string) {
		parts := make([]string, len(widths))
		for i, cw := range widths {
			parts[i] = strings.Repeat("─", cw+2)
		}
		fmt.Fprintln(w, left+strings.Join(parts, mid)+right)
	}
	line := func(cells []string) {
		var sb strings.Builder
		sb.WriteString("│")
		for i, cw := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(" ")
			sb.WriteString(runewidth.FillRight(cell, cw))
			sb.WriteString(" │")
		}
		fmt.Fprintln(w, sb.String())
	}

	border("┌", "┬", "┐")
	line(header)
	border("├", "┼", "┤")
	for _, row := range rows {
		line(row)
	}
	border("└", "┴", "┘")
}

func normalizeCity(city string) string {
	city = strings.TrimSpace(city)
	if city == "" {
		return "Unknown"
	}
	return city
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
