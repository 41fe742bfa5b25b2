package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

var ErrNotACountry = errors.New("country document is not a JSON object")

// Country is a catalog entry. Only the 3-letter code and the common name are
// read; the full document is kept in Raw and written back untouched, so
// fields the catalog adds or drops never break stored favorites.
type Country struct {
	Code string
	Name string
	Raw  json.RawMessage
}

type countryName struct {
	Common string `json:"common"`
}

type countryHead struct {
	Code string          `json:"cca3"`
	Name json.RawMessage `json:"name"`
}

// NewCountry builds a country that marshals as {"cca3":code,"name":{"common":name}}.
func NewCountry(code, name string) Country {
	return Country{Code: code, Name: name}
}

func (c Country) MarshalJSON() ([]byte, error) {
	if len(c.Raw) > 0 {
		return c.Raw, nil
	}
	return json.Marshal(struct {
		Code string      `json:"cca3"`
		Name countryName `json:"name"`
	}{Code: c.Code, Name: countryName{Common: c.Name}})
}

func (c *Country) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrNotACountry
	}

	var head countryHead
	if err := json.Unmarshal(trimmed, &head); err != nil {
		return err
	}

	// name is an object in the catalog, but tolerate a bare string.
	var name countryName
	if err := json.Unmarshal(head.Name, &name); err != nil {
		var s string
		if json.Unmarshal(head.Name, &s) == nil {
			name.Common = s
		}
	}

	c.Code = head.Code
	c.Name = name.Common
	c.Raw = append(json.RawMessage(nil), trimmed...)
	return nil
}

func (c Country) String() string {
	if c.Name == "" {
		return c.Code
	}
	return c.Code + " " + c.Name
}

// ContainsCode reports whether list holds a country with the given code.
func ContainsCode(list []Country, code string) bool {
	for _, c := range list {
		if c.Code == code {
			return true
		}
	}
	return false
}

// WithoutCode returns a copy of list without entries carrying code.
func WithoutCode(list []Country, code string) []Country {
	out := make([]Country, 0, len(list))
	for _, c := range list {
		if c.Code != code {
			out = append(out, c)
		}
	}
	return out
}

// CloneCountries deep-copies list, raw documents included.
func CloneCountries(list []Country) []Country {
	if list == nil {
		return nil
	}
	out := make([]Country, len(list))
	for i, c := range list {
		out[i] = Country{Code: c.Code, Name: c.Name, Raw: append(json.RawMessage(nil), c.Raw...)}
	}
	return out
}

// DedupeByCode drops later entries whose code was already seen, keeping the
// original order.
func DedupeByCode(list []Country) []Country {
	seen := make(map[string]bool, len(list))
	out := make([]Country, 0, len(list))
	for _, c := range list {
		if seen[c.Code] {
			continue
		}
		seen[c.Code] = true
		out = append(out, c)
	}
	return out
}
