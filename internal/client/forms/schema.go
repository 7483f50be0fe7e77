// Package forms converts interactive field input into validated request
// payloads and back. Each entity declares a field schema; a Buffer is the
// mutable draft of one record being created or edited.
package forms

import "fmt"

// Kind classifies how a field's raw input is interpreted.
type Kind int

const (
	// Text fields keep the raw string.
	Text Kind = iota
	// Numeric fields are parsed as numbers; unparsable input becomes 0.
	Numeric
)

// Field describes one entity attribute.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// Options, when non-empty, restricts a text field to an enumerated set.
	Options []string
}

// Schema is the ordered field list of one entity.
type Schema struct {
	Entity string
	Fields []Field
}

// Field looks a field up by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// ValidationError reports a client-side field check that failed before any
// network call was attempted.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, e.Reason)
}

// VehicleSchema describes the /vehicles payload.
func VehicleSchema() Schema {
	return Schema{
		Entity: "vehicle",
		Fields: []Field{
			{Name: "brand", Kind: Text, Required: true},
			{Name: "model", Kind: Text, Required: true},
			{Name: "year", Kind: Numeric, Required: true},
			{Name: "color", Kind: Text},
			{Name: "plate", Kind: Text, Required: true},
			{Name: "status", Kind: Text, Options: []string{"آزاد", "اجاره شده", "در تعمیر"}},
			{Name: "hourly_rental_rate", Kind: Numeric, Required: true},
			{Name: "daily_rental_rate", Kind: Numeric},
		},
	}
}

// InsuranceSchema describes the /vehicle_insurances payload.
func InsuranceSchema() Schema {
	return Schema{
		Entity: "vehicle_insurance",
		Fields: []Field{
			{Name: "insurance_company", Kind: Text, Required: true},
			{Name: "policy_number", Kind: Text, Required: true},
			{Name: "start_date", Kind: Text, Required: true},
			{Name: "expiration_date", Kind: Text, Required: true},
			{Name: "premium_amount", Kind: Numeric, Required: true},
			{Name: "vehicle_id", Kind: Text, Required: true},
		},
	}
}

// SignupSchema describes the admin-collected part of POST /customers.
// Identity fields the form never collects (gender, birthday, address) are
// filled with fixed defaults at submit time, not declared here.
func SignupSchema() Schema {
	return Schema{
		Entity: "customer",
		Fields: []Field{
			{Name: "first_name", Kind: Text, Required: true},
			{Name: "last_name", Kind: Text, Required: true},
			{Name: "username", Kind: Text, Required: true},
			{Name: "email", Kind: Text, Required: true},
			{Name: "phone", Kind: Text, Required: true},
			{Name: "national_id", Kind: Text, Required: true},
			{Name: "password", Kind: Text, Required: true},
		},
	}
}
