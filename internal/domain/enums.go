package domain

type Block string

const (
	BlockAM Block = "AM"
	BlockPM Block = "PM"
)

// BlockFor returns the half-day block a slot starting at minute falls in.
func BlockFor(minute int) Block {
	if minute < 12*60 {
		return BlockAM
	}
	return BlockPM
}

type SlotSource string

const (
	SourceOriginal SlotSource = "ORIGINAL"
	SourceRepair   SlotSource = "REPAIR"
	SourceCancel   SlotSource = "CANCEL"
)

type Indicator string

const (
	IndicatorNone     Indicator = ""
	IndicatorTag      Indicator = "Tag"
	IndicatorSplit    Indicator = "Split"
	IndicatorTraining Indicator = "Training"
	IndicatorReassign Indicator = "Reassign"
)

type StaffRole string

const (
	RoleLead       StaffRole = "Lead"
	RoleTechnician StaffRole = "Technician"
	RoleTrainer    StaffRole = "Trainer"
	// RoleFloat is the unqualified role that may not cover crisis clients.
	RoleFloat StaffRole = "Float"
)

type StaffStatus string

const (
	StaffPresent   StaffStatus = "present"
	StaffAbsent    StaffStatus = "absent"
	StaffCalledOut StaffStatus = "called_out"
)

type EditKind string

const (
	EditChangeStaff EditKind = "change_staff"
	EditSplit       EditKind = "split"
	EditTrain       EditKind = "train"
	EditCancel      EditKind = "cancel"
	EditTag         EditKind = "tag"
)

// ValidEditKinds is the canonical set of accepted edit kind strings.
var ValidEditKinds = map[EditKind]bool{
	EditChangeStaff: true, EditSplit: true, EditTrain: true,
	EditCancel: true, EditTag: true,
}

type CancelType string

const (
	CancelAllDay CancelType = "all_day"
	CancelUntil  CancelType = "cancelled_until"
	CancelAt     CancelType = "cancelled_at"
)

type WarningType string

const (
	WarningHard WarningType = "hard"
	WarningSoft WarningType = "soft"
)

// OpenValue is the display text of a slot whose client was cancelled.
const OpenValue = "OPEN"
