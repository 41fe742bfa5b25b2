package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/countryexplorer/internal/client/models"
)

// countryView holds the catalog fields the CLI displays. Missing fields stay
// zero and print as "N/A".
type countryView struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	Region     string            `json:"region"`
	Subregion  string            `json:"subregion"`
	Capital    []string          `json:"capital"`
	Population int64             `json:"population"`
	Languages  map[string]string `json:"languages"`
	Borders    []string          `json:"borders"`
	Flags      struct {
		PNG string `json:"png"`
	} `json:"flags"`
}

func viewOf(c models.Country) countryView {
	var v countryView
	if len(c.Raw) > 0 {
		_ = json.Unmarshal(c.Raw, &v)
	}
	if v.Name.Common == "" {
		v.Name.Common = c.Name
	}
	return v
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func (v countryView) capital() string {
	if len(v.Capital) == 0 {
		return ""
	}
	return v.Capital[0]
}

// formatPopulation groups digits in threes: 83240525 -> 83,240,525.
func formatPopulation(n int64) string {
	s := fmt.Sprint(n)
	if n < 0 {
		return s
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// summaryLine renders one country for list output. Favorites get a star.
func summaryLine(c models.Country, favorite bool) string {
	v := viewOf(c)
	mark := " "
	if favorite {
		mark = "*"
	}
	return fmt.Sprintf("%s %-3s  %-32s  %-9s  capital: %s  population: %s",
		mark, c.Code, v.Name.Common, orNA(v.Region), orNA(v.capital()), formatPopulation(v.Population))
}

func detailLines(c models.Country, favorite bool) []string {
	v := viewOf(c)

	languages := make([]string, 0, len(v.Languages))
	for _, l := range v.Languages {
		languages = append(languages, l)
	}
	sort.Strings(languages)

	status := "no"
	if favorite {
		status = "yes"
	}

	return []string{
		fmt.Sprintf("%s (%s)", v.Name.Common, c.Code),
		"  Official name: " + orNA(v.Name.Official),
		"  Population:    " + formatPopulation(v.Population),
		"  Region:        " + orNA(v.Region),
		"  Subregion:     " + orNA(v.Subregion),
		"  Capital:       " + orNA(v.capital()),
		"  Languages:     " + orNA(strings.Join(languages, ", ")),
		"  Borders:       " + orNA(strings.Join(v.Borders, ", ")),
		"  Flag:          " + orNA(v.Flags.PNG),
		"  Favorite:      " + status,
	}
}
