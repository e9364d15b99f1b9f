package services

import "strings"

// Address is the positional split of a Maps address line.
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
}

// ParseAddress splits "street[, more], city, STATE ZIP" on commas, working
// from the end: the last part is "STATE [ZIP]", the one before it the city,
// and the first part (if any remain) the street. Extra middle parts such as
// a suite number are dropped.
//
// With fewer than two parts there is no city or state to take; the trimmed
// input is returned as the street.
func ParseAddress(raw string) Address {
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	n := len(parts)
	if n < 2 {
		return Address{Street: strings.TrimSpace(raw)}
	}

	var addr Address
	if n > 2 {
		addr.Street = parts[0]
	}
	addr.City = parts[n-2]

	stateZip := strings.Fields(parts[n-1])
	if len(stateZip) > 0 {
		addr.State = stateZip[0]
	}
	if len(stateZip) > 1 {
		addr.ZipCode = stateZip[1]
	}

	return addr
}
