package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// RosterFile is the top-level structure of a roster import. YAML and JSON
// are both accepted.
type RosterFile struct {
	Staff   []StaffImport  `yaml:"staff"`
	Clients []ClientImport `yaml:"clients"`
}

type StaffImport struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Role   string `yaml:"role"`
	Active *bool  `yaml:"active,omitempty"`
}

type ClientImport struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Crisis   bool     `yaml:"crisis,omitempty"`
	Excluded []string `yaml:"excluded_staff,omitempty"`
	Trained  []string `yaml:"trained_staff,omitempty"`
	Focus    []string `yaml:"focus_staff,omitempty"`
}

// ScheduleFile is one day's official schedule. Times are "H:MM".
type ScheduleFile struct {
	Date  string      `yaml:"date"`
	Staff []DayImport `yaml:"staff"`
}

type DayImport struct {
	StaffID string       `yaml:"staff_id"`
	Status  string       `yaml:"status,omitempty"`
	Slots   []SlotImport `yaml:"slots"`
}

type SlotImport struct {
	ID        string `yaml:"id,omitempty"`
	Client    string `yaml:"client,omitempty"`
	Value     string `yaml:"value,omitempty"`
	Start     string `yaml:"start"`
	End       string `yaml:"end"`
	Source    string `yaml:"source,omitempty"`
	Reason    string `yaml:"reason,omitempty"`
	Indicator string `yaml:"indicator,omitempty"`
}

// LoadRosterFile reads and parses a roster file.
func LoadRosterFile(path string) (*RosterFile, error) {
	var f RosterFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadScheduleFile reads and parses a schedule file.
func LoadScheduleFile(path string) (*ScheduleFile, error) {
	var f ScheduleFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return decode(data, out)
}

// decode rejects unknown keys so a misspelled field fails loudly.
func decode(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("parsing import file: empty document")
		}
		return fmt.Errorf("parsing import file: %w", err)
	}
	return nil
}
