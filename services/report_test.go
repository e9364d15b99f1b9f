package services

import (
	"bytes"
	"strings"
	"testing"

	"gmaps-scraper/models"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func sampleList() *models.BusinessList {
	var list models.BusinessList
	list.Add(models.Business{Name: "A", Address: "1 Main St", City: "Austin", PhoneNumber: "(512) 555-0100"})
	list.Add(models.Business{Name: "B", Address: "2 Main St", City: "Austin", Website: "b.example"})
	list.Add(models.Business{Name: "C", City: "Zürich"})
	list.Add(models.Business{Name: "D"})
	return &list
}

func TestGenerateReport(t *testing.T) {
	report := GenerateReport("dentist Austin Texas", "stabilized", sampleList())

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.WithAddress)
	assert.Equal(t, 1, report.WithPhone)
	assert.Equal(t, 1, report.WithWebsite)
	assert.Equal(t, map[string]int{"Austin": 2, "Zürich": 1, "Unknown": 1}, report.ListingsByCity)
}

func TestPrintReport_AlignsRows(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, GenerateReport("dentist", "reached target", sampleList()))

	out := buf.String()
	assert.Contains(t, out, "reached target")
	assert.Contains(t, out, "Zürich")

	// lines of the city table all share one display width
	cityTable := out[strings.Index(out, "│ City"):]
	var widths []int
	for _, line := range strings.Split(cityTable, "\n") {
		if strings.HasPrefix(line, "│") {
			widths = append(widths, runewidth.StringWidth(line))
		}
	}
	assert.Len(t, widths, 4)
	for _, w := range widths {
		assert.Equal(t, widths[0], w)
	}
}

func TestPrintReport_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, GenerateReport("dentist", "stabilized", &models.BusinessList{}))

	assert.NotContains(t, buf.String(), "City")
}
