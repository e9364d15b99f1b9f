package gmaps

import (
	"os"
	"path/filepath"
	"testing"

	"gmaps-scraper/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestParseListing_AllRegions(t *testing.T) {
	listing, err := ParseListing(loadFixture(t, "row.html"), loadFixture(t, "panel.html"))
	require.NoError(t, err)

	assert.Equal(t, Listing{
		Name:    "Bright Smile Dental",
		Address: "123 Main St, Suite 2, New York, NY 10001",
		Website: "brightsmile.example",
		Phone:   "(212) 555-0100",
	}, listing)
}

func TestParseListing_NameComesFromRow(t *testing.T) {
	// the page also holds other rows' headlines; only the clicked row counts
	listing, err := ParseListing(`<div></div>`, loadFixture(t, "panel.html"))
	require.NoError(t, err)

	assert.Empty(t, listing.Name)
	assert.Equal(t, "(212) 555-0100", listing.Phone)
}

func TestParseListing_MissingRegionsAreEmpty(t *testing.T) {
	page := `<body><div role="main">
		<h1>Corner Dental</h1>
		<button data-item-id="phone:tel:+15125550199"><div class="fontBodyMedium">(512) 555-0199</div></button>
		<button data-item-id="oloc"><div class="fontBodyMedium">Located in: Mall</div></button>
	</div></body>`

	listing, err := ParseListing(loadFixture(t, "row.html"), page)
	require.NoError(t, err)

	assert.Equal(t, "Bright Smile Dental", listing.Name)
	assert.Empty(t, listing.Address)
	assert.Empty(t, listing.Website)
	assert.Equal(t, "(512) 555-0199", listing.Phone)
}

func TestParseListing_NonPhoneButtonIgnored(t *testing.T) {
	page := `<button data-item-id="phone"><div class="fontBodyMedium">Send to phone</div></button>`

	listing, err := ParseListing("", page)
	require.NoError(t, err)
	assert.Empty(t, listing.Phone)
}

func TestRowXPath(t *testing.T) {
	assert.Equal(t, `(//a[starts-with(@href, "https://www.google.com/maps/place")])[1]/..`, rowXPath(0))
	assert.Equal(t, `(//a[starts-with(@href, "https://www.google.com/maps/place")])[12]`, linkXPath(11))
}

func TestToBusiness(t *testing.T) {
	listing := Listing{
		Name:    "Bright Smile Dental",
		Address: "123 Main St, Suite 2, New York, NY 10001",
		Website: "brightsmile.example",
		Phone:   "(212) 555-0100",
	}

	assert.Equal(t, models.Business{
		Name:         "Bright Smile Dental",
		Address:      "123 Main St",
		City:         "New York",
		State:        "NY",
		ZipCode:      "10001",
		BusinessType: "dentist",
		Website:      "brightsmile.example",
		PhoneNumber:  "(212) 555-0100",
	}, toBusiness(listing, "dentist"))
}

func TestToBusiness_NoAddress(t *testing.T) {
	b := toBusiness(Listing{Name: "Mobile Dentist"}, "dentist")

	assert.Equal(t, models.Business{Name: "Mobile Dentist", BusinessType: "dentist"}, b)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "Zü...", truncate("Zürich", 2))
}
