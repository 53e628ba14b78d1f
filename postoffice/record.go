package postoffice

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Canonical column names of the package file.
const (
	ColID              = "package_id"
	ColCourier         = "delivery_guy"
	ColWeight          = "weight_kg"
	ColSize            = "size_cm"
	ColSenderName      = "sender_name"
	ColSenderAddress   = "sender_address"
	ColReceiverName    = "receiver_name"
	ColReceiverAddress = "receiver_address"
	ColLabel           = "label"
	ColStatus          = "status"
)

// Well known label values.  Labels are stored upper case.
const (
	LabelFragile  = "FRAGILE"
	LabelUrgent   = "URGENT"
	LabelStandard = "STANDARD"
)

// knownColumns lists the columns that map onto Record fields, in canonical
// order.
var knownColumns = []string{
	ColID,
	ColCourier,
	ColWeight,
	ColSize,
	ColSenderName,
	ColSenderAddress,
	ColReceiverName,
	ColReceiverAddress,
	ColLabel,
	ColStatus,
}

// Record is a single package entry.  All values are kept as strings, exactly
// as they appear in the file.  Columns that this package does not know about
// are preserved in Extra and survive the load/save round trip.
type Record struct {
	ID              string
	Courier         string
	Weight          string
	Size            string
	SenderName      string
	SenderAddress   string
	ReceiverName    string
	ReceiverAddress string
	Label           string
	Status          string

	Extra map[string]string
}

// NewRecord creates a Record from a column to value mapping.
func NewRecord(values map[string]string) Record {
	var r Record
	for col, v := range values {
		r.Set(col, v)
	}
	return r
}

// field maps a canonical column name to the corresponding struct field.
func (r *Record) field(col string) *string {
	switch col {
	case ColID:
		return &r.ID
	case ColCourier:
		return &r.Courier
	case ColWeight:
		return &r.Weight
	case ColSize:
		return &r.Size
	case ColSenderName:
		return &r.SenderName
	case ColSenderAddress:
		return &r.SenderAddress
	case ColReceiverName:
		return &r.ReceiverName
	case ColReceiverAddress:
		return &r.ReceiverAddress
	case ColLabel:
		return &r.Label
	case ColStatus:
		return &r.Status
	}
	return nil
}

// Value returns the value of the given column, or an empty string if the
// record does not have one.
func (r *Record) Value(col string) string {
	if p := r.field(col); p != nil {
		return *p
	}
	return r.Extra[col]
}

// Set sets the value of the given column.
func (r *Record) Set(col, value string) {
	if p := r.field(col); p != nil {
		*p = value
		return
	}
	if r.Extra == nil {
		r.Extra = make(map[string]string, 1)
	}
	r.Extra[col] = value
}

// CourierID returns the numeric courier assignment of the record.
// Surrounding whitespace is tolerated.
func (r *Record) CourierID() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(r.Courier))
	if err != nil {
		return 0, &FieldError{ID: r.ID, Column: ColCourier, Value: r.Courier, Err: err}
	}
	return n, nil
}

// WeightKG returns the package weight in kilograms.  Surrounding whitespace
// is tolerated.
func (r *Record) WeightKG() (float64, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(r.Weight), 64)
	if err != nil {
		return 0, &FieldError{ID: r.ID, Column: ColWeight, Value: r.Weight, Err: err}
	}
	return w, nil
}

func (r Record) clone() Record {
	r.Extra = maps.Clone(r.Extra)
	return r
}

// FieldError is returned when a record value cannot be parsed.
type FieldError struct {
	ID     string // package identifier of the offending record
	Column string
	Value  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("package %q: bad %s value %q: %v", e.ID, e.Column, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
