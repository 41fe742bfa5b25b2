package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownRegion = errors.New("unknown region")

// Region is one of the catalog's fixed regions.
type Region string

const (
	RegionAfrica   Region = "Africa"
	RegionAmericas Region = "Americas"
	RegionAsia     Region = "Asia"
	RegionEurope   Region = "Europe"
	RegionOceania  Region = "Oceania"
)

// Regions lists every valid region in display order.
var Regions = []Region{RegionAfrica, RegionAmericas, RegionAsia, RegionEurope, RegionOceania}

// ParseRegion matches s against the known regions, ignoring case and
// surrounding whitespace.
func ParseRegion(s string) (Region, error) {
	s = strings.TrimSpace(s)
	for _, r := range Regions {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRegion, s)
}

func (r Region) Valid() bool {
	for _, known := range Regions {
		if r == known {
			return true
		}
	}
	return false
}
