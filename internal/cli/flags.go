package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*windowValue)(nil)
	_ pflag.Value = (*minuteValue)(nil)
	_ pflag.Value = (*segmentsValue)(nil)
)

// windowValue parses an "H:MM-H:MM" flag.
type windowValue struct {
	w *domain.TimeWindow
}

func newWindowValue(p *domain.TimeWindow) *windowValue {
	return &windowValue{w: p}
}

func (v *windowValue) Set(s string) error {
	w, err := domain.ParseWindow(s)
	if err != nil {
		return err
	}
	*v.w = w
	return nil
}

func (v *windowValue) String() string {
	if v.w == nil || *v.w == (domain.TimeWindow{}) {
		return ""
	}
	return v.w.String()
}

func (v *windowValue) Type() string { return "window" }

// minuteValue parses an "H:MM" flag into minutes since midnight.
type minuteValue struct {
	m *int
}

func newMinuteValue(p *int) *minuteValue {
	return &minuteValue{m: p}
}

func (v *minuteValue) Set(s string) error {
	m, err := domain.ParseMinute(s)
	if err != nil {
		return err
	}
	*v.m = m
	return nil
}

func (v *minuteValue) String() string {
	if v.m == nil || *v.m == 0 {
		return ""
	}
	return domain.FormatMinute(*v.m)
}

func (v *minuteValue) Type() string { return "time" }

// segmentsValue collects repeated "staff=H:MM-H:MM" flags.
type segmentsValue struct {
	segs *[]domain.SplitSegment
}

func newSegmentsValue(p *[]domain.SplitSegment) *segmentsValue {
	return &segmentsValue{segs: p}
}

func (v *segmentsValue) Set(s string) error {
	staffID, window, ok := strings.Cut(s, "=")
	staffID = strings.TrimSpace(staffID)
	if !ok || staffID == "" {
		return fmt.Errorf("expected staff=H:MM-H:MM")
	}
	w, err := domain.ParseWindow(window)
	if err != nil {
		return err
	}
	*v.segs = append(*v.segs, domain.SplitSegment{StaffID: staffID, Window: w})
	return nil
}

func (v *segmentsValue) String() string {
	if v.segs == nil {
		return ""
	}
	parts := make([]string, 0, len(*v.segs))
	for _, seg := range *v.segs {
		parts = append(parts, seg.StaffID+"="+seg.Window.String())
	}
	return strings.Join(parts, ",")
}

func (v *segmentsValue) Type() string { return "segment" }
