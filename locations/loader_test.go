package locations

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = `city,city_ascii,state_id,state_name,population
New York,New York,NY,New York,18908608
Los Angeles,Los Angeles,CA,California,11922389
,blank,XX,Nowhere,0
Chicago,Chicago,IL,Illinois,8497759
`

func TestRead_KeepsFileOrder(t *testing.T) {
	locs, err := Read(strings.NewReader(sampleTable))
	require.NoError(t, err)

	require.Len(t, locs, 3)
	assert.Equal(t, Location{City: "New York", State: "New York"}, locs[0])
	assert.Equal(t, Location{City: "Los Angeles", State: "California"}, locs[1])
	assert.Equal(t, Location{City: "Chicago", State: "Illinois"}, locs[2])
}

func TestRead_ColumnOrderIsFree(t *testing.T) {
	locs, err := Read(strings.NewReader("state_name,city\nTexas,Austin\n"))
	require.NoError(t, err)

	assert.Equal(t, []Location{{City: "Austin", State: "Texas"}}, locs)
}

func TestRead_MissingColumn(t *testing.T) {
	_, err := Read(strings.NewReader("city,state_id\nAustin,TX\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoLocations)

	_, err = Read(strings.NewReader("city,state_name\n"))
	assert.ErrorIs(t, err, ErrNoLocations)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uscities.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleTable), 0o644))

	locs, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, locs, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestQuery(t *testing.T) {
	assert.Equal(t, "dentist New York New York", Query("dentist", Location{City: "New York", State: "New York"}))
	assert.Equal(t, "plumber Austin TX", Query("plumber", Single("Austin TX")[0]))
}
