// Package snapshot implements the compact daily-snapshot format used to store
// official schedules. Keys are single letters, slot statuses are coded, and
// empty fields are omitted so a round trip never turns an absent field into
// null.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Version is the only compact format version this package reads and writes.
const Version = 1

var ErrUnsupportedVersion = errors.New("unsupported snapshot version")

// Slot statuses.
const (
	StatusAssigned  = "assigned"
	StatusUnfilled  = "unfilled"
	StatusCancelled = "cancelled"
)

var statusCodes = map[string]string{
	StatusAssigned:  "a",
	StatusUnfilled:  "u",
	StatusCancelled: "c",
}

var statusNames = func() map[string]string {
	m := make(map[string]string, len(statusCodes))
	for name, code := range statusCodes {
		m[code] = name
	}
	return m
}()

// DailySnapshot is the expanded form of a stored day.
type DailySnapshot struct {
	Version int          `json:"version"`
	Date    string       `json:"date,omitempty"`
	Staff   []StaffEntry `json:"staff,omitempty"`
}

type StaffEntry struct {
	StaffID string      `json:"staffId"`
	Status  string      `json:"status,omitempty"`
	Slots   []SlotEntry `json:"slots,omitempty"`
}

type SlotEntry struct {
	ID        string `json:"id,omitempty"`
	Block     string `json:"block,omitempty"`
	Value     string `json:"value,omitempty"`
	Source    string `json:"source,omitempty"`
	Reason    string `json:"reason,omitempty"`
	ClientID  string `json:"clientId,omitempty"`
	Start     int    `json:"start,omitempty"`
	End       int    `json:"end,omitempty"`
	Indicator string `json:"indicator,omitempty"`
	Status    string `json:"status,omitempty"`
}

// Compact is the wire form of a DailySnapshot.
type Compact struct {
	V int            `json:"v"`
	D string         `json:"d,omitempty"`
	P []CompactStaff `json:"p,omitempty"`
}

type CompactStaff struct {
	I string        `json:"i"`
	T string        `json:"t,omitempty"`
	A []CompactSlot `json:"a,omitempty"`
}

type CompactSlot struct {
	I string `json:"i,omitempty"`
	B string `json:"b,omitempty"`
	V string `json:"v,omitempty"`
	O string `json:"o,omitempty"`
	R string `json:"r,omitempty"`
	C string `json:"c,omitempty"`
	S int    `json:"s,omitempty"`
	E int    `json:"e,omitempty"`
	N string `json:"n,omitempty"`
	X string `json:"x,omitempty"`
}

// Compress converts a snapshot to its compact form. A zero Version is
// written as the current Version.
func Compress(s DailySnapshot) Compact {
	out := Compact{V: s.Version, D: s.Date}
	if out.V == 0 {
		out.V = Version
	}
	for _, st := range s.Staff {
		cs := CompactStaff{I: st.StaffID, T: st.Status}
		for _, sl := range st.Slots {
			cs.A = append(cs.A, CompactSlot{
				I: sl.ID, B: sl.Block, V: sl.Value, O: sl.Source, R: sl.Reason,
				C: sl.ClientID, S: sl.Start, E: sl.End, N: sl.Indicator,
				X: encodeStatus(sl.Status),
			})
		}
		out.P = append(out.P, cs)
	}
	return out
}

// Decompress is the inverse of Compress.
func Decompress(c Compact) DailySnapshot {
	out := DailySnapshot{Version: c.V, Date: c.D}
	for _, cs := range c.P {
		st := StaffEntry{StaffID: cs.I, Status: cs.T}
		for _, sl := range cs.A {
			st.Slots = append(st.Slots, SlotEntry{
				ID: sl.I, Block: sl.B, Value: sl.V, Source: sl.O, Reason: sl.R,
				ClientID: sl.C, Start: sl.S, End: sl.E, Indicator: sl.N,
				Status: decodeStatus(sl.X),
			})
		}
		out.Staff = append(out.Staff, st)
	}
	return out
}

// Encode compresses s and marshals it.
func Encode(s DailySnapshot) ([]byte, error) {
	data, err := json.Marshal(Compress(s))
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses compact JSON. Versions other than Version are rejected.
func Decode(data []byte) (DailySnapshot, error) {
	var c Compact
	if err := json.Unmarshal(data, &c); err != nil {
		return DailySnapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if c.V != Version {
		return DailySnapshot{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, c.V)
	}
	return Decompress(c), nil
}

// Unknown status strings pass through in both directions.
func encodeStatus(s string) string {
	if code, ok := statusCodes[s]; ok {
		return code
	}
	return s
}

func decodeStatus(s string) string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return s
}
