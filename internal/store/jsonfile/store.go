// Package jsonfile persists each collection as a flat JSON array in its own
// file under a data directory. Every mutation rewrites the whole file via a
// temp file and rename, and all access to a collection is serialized behind
// its mutex, so check-then-insert sequences (slot uniqueness, id assignment)
// are atomic with respect to other writers in this process.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/clinagenda/clinagenda/internal/domain/appointment"
	"github.com/clinagenda/clinagenda/internal/domain/doctor"
	"github.com/clinagenda/clinagenda/internal/domain/patient"
)

const (
	patientsFile     = "pacientes.json"
	doctorsFile      = "doctores.json"
	appointmentsFile = "citas.json"
)

type Store struct {
	patients     *collection[patient.Patient]
	doctors      *collection[doctor.Doctor]
	appointments *collection[appointment.Appointment]
}

func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", dir, err)
	}
	return &Store{
		patients:     &collection[patient.Patient]{path: filepath.Join(dir, patientsFile)},
		doctors:      &collection[doctor.Doctor]{path: filepath.Join(dir, doctorsFile)},
		appointments: &collection[appointment.Appointment]{path: filepath.Join(dir, appointmentsFile)},
	}, nil
}

func (s *Store) Patients() patient.Repository         { return &patientRepo{c: s.patients} }
func (s *Store) Doctors() doctor.Repository           { return &doctorRepo{c: s.doctors} }
func (s *Store) Appointments() appointment.Repository { return &appointmentRepo{c: s.appointments} }

// collection is one JSON file holding an insertion-ordered array of records.
type collection[T any] struct {
	mu   sync.Mutex
	path string
}

// load reads the full collection. A missing file is an empty collection.
func (c *collection[T]) load() ([]*T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", c.path, err)
	}
	var items []*T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", c.path, err)
	}
	return items, nil
}

// save rewrites the collection atomically.
func (c *collection[T]) save(items []*T) error {
	if items == nil {
		items = []*T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.path, err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replacing %s: %w", c.path, err)
	}
	return nil
}

// nextID assigns prefix###, continuing from the highest numeric suffix seen.
func nextID[T any](items []*T, prefix string, id func(*T) string) string {
	max := 0
	for _, it := range items {
		raw := id(it)
		if len(raw) <= len(prefix) {
			continue
		}
		if n, err := strconv.Atoi(raw[len(prefix):]); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, max+1)
}
