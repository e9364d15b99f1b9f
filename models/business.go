package models

// Business is one Maps listing. All fields are free text and default to "".
type Business struct {
	Name         string
	Address      string
	State        string
	City         string
	ZipCode      string
	BusinessType string
	Website      string
	PhoneNumber  string
}

// Columns is the fixed column set used for exports and the businesses table.
var Columns = []string{
	"name",
	"address",
	"state",
	"city",
	"zip_code",
	"business_type",
	"website",
	"phone_number",
}

// Values returns b's fields in Columns order.
func (b Business) Values() []string {
	return []string{
		b.Name,
		b.Address,
		b.State,
		b.City,
		b.ZipCode,
		b.BusinessType,
		b.Website,
		b.PhoneNumber,
	}
}

// BusinessList accumulates the records of one search run in scrape order.
// It does not deduplicate; the businesses table's unique key does that.
type BusinessList struct {
	items []Business
}

func (l *BusinessList) Add(b Business) {
	l.items = append(l.items, b)
}

func (l *BusinessList) Len() int {
	return len(l.items)
}

func (l *BusinessList) Items() []Business {
	return l.items
}

func (l *BusinessList) Columns() []string {
	return append([]string(nil), Columns...)
}

// Rows flattens the list into one row per record, in Columns order.
func (l *BusinessList) Rows() [][]string {
	rows := make([][]string, 0, len(l.items))
	for _, b := range l.items {
		rows = append(rows, b.Values())
	}
	return rows
}

// SearchJob is one (search term, location) run.
type SearchJob struct {
	Index    int
	Query    string
	Search   string
	Location string
}
