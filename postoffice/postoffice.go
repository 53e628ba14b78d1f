// Package postoffice implements a CSV backed store of delivery packages.
//
// The first row of the package file is the schema, and every following row is
// one package record, keyed by the package_id column.  Values are not coerced
// on load; numeric columns are parsed on demand.  Mutations update the
// in-memory state first and then rewrite the whole file through a temporary
// file in the same directory, renamed over the original once fully written.
package postoffice

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var (
	// ErrNotFound is returned when no package matches the given identifier.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned by Add when the package identifier is already
	// taken.
	ErrDuplicate = errors.New("duplicate package id")
	// ErrNoID is returned by Add when the record carries no package
	// identifier.
	ErrNoID = errors.New("package id is empty")
)

// Store is a collection of package records loaded from a CSV file.  It is not
// safe for concurrent use.
type Store struct {
	path    string
	header  []string
	records []Record
}

// Open reads the package file at path.  The returned error wraps
// fs.ErrNotExist if the file does not exist.
func Open(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("postoffice: %w", err)
	}
	defer f.Close()
	s := &Store{path: path}
	if err := s.load(f); err != nil {
		return nil, fmt.Errorf("postoffice: read %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) load(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	s.header = rows[0]
	s.records = make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var rec Record
		for i, col := range s.header {
			if i >= len(row) {
				break
			}
			rec.Set(col, row[i])
		}
		s.records = append(s.records, rec)
	}
	return nil
}

// Path returns the file the store was opened from.
func (s *Store) Path() string { return s.path }

// Len returns the number of package records in the store.
func (s *Store) Len() int { return len(s.records) }

// Columns returns the schema of the package file in file order.
func (s *Store) Columns() []string { return slices.Clone(s.header) }

func (s *Store) find(id string) int {
	return slices.IndexFunc(s.records, func(r Record) bool { return r.ID == id })
}

// Package returns the first record with the given identifier.
func (s *Store) Package(id string) (Record, error) {
	i := s.find(id)
	if i < 0 {
		return Record{}, fmt.Errorf("package %q: %w", id, ErrNotFound)
	}
	return s.records[i].clone(), nil
}

// PackagesFor returns all packages assigned to the given courier, in file
// order.  It fails if any record in the store has a non-numeric courier
// value.
func (s *Store) PackagesFor(courier int) ([]Record, error) {
	var out []Record
	for _, r := range s.records {
		n, err := r.CourierID()
		if err != nil {
			return nil, err
		}
		if n == courier {
			out = append(out, r.clone())
		}
	}
	return out, nil
}

// Stats summarises the packages assigned to a single courier.
type Stats struct {
	Courier       int
	TotalPackages int
	TotalWeightKG float64
	Fragile       int
	Urgent        int
}

// CourierStats computes delivery statistics for the given courier.  The total
// weight is rounded to two decimal places.
func (s *Store) CourierStats(courier int) (Stats, error) {
	pkgs, err := s.PackagesFor(courier)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Courier: courier, TotalPackages: len(pkgs)}
	for _, p := range pkgs {
		w, err := p.WeightKG()
		if err != nil {
			return Stats{}, err
		}
		st.TotalWeightKG += w
		switch p.Label {
		case LabelFragile:
			st.Fragile++
		case LabelUrgent:
			st.Urgent++
		}
	}
	st.TotalWeightKG = math.Round(st.TotalWeightKG*100) / 100
	return st, nil
}

// Couriers returns the sorted list of distinct courier identifiers that have
// at least one package assigned.
func (s *Store) Couriers() ([]int, error) {
	seen := make(map[int]struct{})
	for _, r := range s.records {
		n, err := r.CourierID()
		if err != nil {
			return nil, err
		}
		seen[n] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen)), nil
}

// PackagesByLabel returns all packages with the given label.  The query is
// upper cased before the comparison, following the upper case label
// convention of the package file.
func (s *Store) PackagesByLabel(label string) []Record {
	want := strings.ToUpper(label)
	var out []Record
	for _, r := range s.records {
		if r.Label == want {
			out = append(out, r.clone())
		}
	}
	return out
}

// PackagesByStatus returns all packages whose status equals the query, case
// insensitively.
func (s *Store) PackagesByStatus(status string) []Record {
	var out []Record
	for _, r := range s.records {
		if strings.EqualFold(r.Status, status) {
			out = append(out, r.clone())
		}
	}
	return out
}

// UpdateStatus sets the status of the package with the given identifier,
// saves the store, and returns the previous status.  If the file has no
// status column yet, one is added to the schema.
func (s *Store) UpdateStatus(id, status string) (string, error) {
	i := s.find(id)
	if i < 0 {
		return "", fmt.Errorf("package %q: %w", id, ErrNotFound)
	}
	old := s.records[i].Status
	s.records[i].Status = status
	s.extendSchema(s.records[i])
	return old, s.persist()
}

// Add appends a new package record and saves the store.  The record must
// carry a package identifier that is not in use.  Columns the schema does not
// have yet are appended to it: known columns in canonical order, any others
// alphabetically.
func (s *Store) Add(rec Record) error {
	if rec.ID == "" {
		return ErrNoID
	}
	if s.find(rec.ID) >= 0 {
		return fmt.Errorf("package %q: %w", rec.ID, ErrDuplicate)
	}
	s.extendSchema(rec)
	s.records = append(s.records, rec.clone())
	return s.persist()
}

// Delete removes all records with the given identifier and saves the store.
func (s *Store) Delete(id string) error {
	before := len(s.records)
	s.records = slices.DeleteFunc(s.records, func(r Record) bool { return r.ID == id })
	if len(s.records) == before {
		return fmt.Errorf("package %q: %w", id, ErrNotFound)
	}
	return s.persist()
}

// DeleteMany removes all records whose identifier is in ids and returns the
// number of records removed.  Identifiers that match nothing are skipped.
// The file is rewritten only if at least one record was removed.
func (s *Store) DeleteMany(ids []string) (int, error) {
	before := len(s.records)
	s.records = slices.DeleteFunc(s.records, func(r Record) bool { return slices.Contains(ids, r.ID) })
	n := before - len(s.records)
	if n == 0 {
		return 0, nil
	}
	return n, s.persist()
}

// extendSchema appends the columns of r that the schema does not have yet.
// Known columns are added only when they have a value.
func (s *Store) extendSchema(r Record) {
	for _, col := range knownColumns {
		if r.Value(col) != "" && !slices.Contains(s.header, col) {
			s.header = append(s.header, col)
		}
	}
	for _, col := range slices.Sorted(maps.Keys(r.Extra)) {
		if !slices.Contains(s.header, col) {
			s.header = append(s.header, col)
		}
	}
}

// persist rewrites the package file.  The data is written to a temporary file
// in the same directory first and renamed over the original.
func (s *Store) persist() error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+"-*")
	if err != nil {
		return fmt.Errorf("postoffice: save %s: %w", s.path, err)
	}
	if err := s.write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("postoffice: save %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("postoffice: save %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("postoffice: save %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.header); err != nil {
		return err
	}
	row := make([]string, len(s.header))
	for _, rec := range s.records {
		for i, col := range s.header {
			row[i] = rec.Value(col)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
