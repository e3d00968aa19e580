package devices

import (
	"net/url"

	"scancal/pkg/query"
	"scancal/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "devices", "d").
	Project("id", "ID").
	Project("name", "Name").
	Project("vendor", "Vendor").
	Project("model", "Model").
	Project("keyboard_layout", "KeyboardLayout").
	Project("registered_at", "RegisteredAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "RegisteredAt",
	Descending: true,
}

// Filters contains optional filtering criteria for device queries.
// Nil fields are ignored. Vendor, Model, and KeyboardLayout use exact
// matching. Name uses case-insensitive contains matching.
type Filters struct {
	Name           *string `json:"name,omitempty"`
	Vendor         *string `json:"vendor,omitempty"`
	Model          *string `json:"model,omitempty"`
	KeyboardLayout *string `json:"keyboard_layout,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Name", f.Name).
		WhereEquals("Vendor", f.Vendor).
		WhereEquals("Model", f.Model).
		WhereEquals("KeyboardLayout", f.KeyboardLayout)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}
	if v := values.Get("vendor"); v != "" {
		f.Vendor = &v
	}
	if m := values.Get("model"); m != "" {
		f.Model = &m
	}
	if kl := values.Get("keyboard_layout"); kl != "" {
		f.KeyboardLayout = &kl
	}

	return f
}

func scanDevice(s repository.Scanner) (Device, error) {
	var d Device
	err := s.Scan(
		&d.ID,
		&d.Name,
		&d.Vendor,
		&d.Model,
		&d.KeyboardLayout,
		&d.RegisteredAt,
		&d.UpdatedAt,
	)
	return d, err
}
