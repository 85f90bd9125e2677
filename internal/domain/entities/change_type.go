package entities

// ChangeType classifies what happened to a file or directory path.
type ChangeType int

const (
	ChangeTypeAdded ChangeType = iota
	ChangeTypeMoved
	ChangeTypeModified
	ChangeTypeDeleted
	ChangeTypeInvalid
)

var changeTypeNames = map[ChangeType]string{ //nolint:gochecknoglobals // lookup table
	ChangeTypeAdded:    "ADDED",
	ChangeTypeMoved:    "MOVED",
	ChangeTypeModified: "MODIFIED",
	ChangeTypeDeleted:  "DELETED",
	ChangeTypeInvalid:  "INVALID",
}

func (it ChangeType) String() string {
	if name, ok := changeTypeNames[it]; ok {
		return name
	}
	return "UNKNOWN"
}

// RequiresUpdate reports whether a reference pointing to the path must be rewritten.
func (it ChangeType) RequiresUpdate() bool {
	return it == ChangeTypeMoved || it == ChangeTypeDeleted
}

// LineChangeType classifies the fate of a single tracked line.
type LineChangeType int

const (
	LineChangeUnchanged LineChangeType = iota
	LineChangeMoved
	LineChangeDeleted
	LineChangeInvalid
)

var lineChangeTypeNames = map[LineChangeType]string{ //nolint:gochecknoglobals // lookup table
	LineChangeUnchanged: "LINE UNCHANGED",
	LineChangeMoved:     "LINE MOVED",
	LineChangeDeleted:   "LINE DELETED",
	LineChangeInvalid:   "LINE INVALID",
}

func (it LineChangeType) String() string {
	if name, ok := lineChangeTypeNames[it]; ok {
		return name
	}
	return "UNKNOWN"
}

// RequiresUpdate reports whether a reference to the line must be rewritten.
func (it LineChangeType) RequiresUpdate() bool {
	return it == LineChangeMoved || it == LineChangeDeleted
}

// LinesChangeType classifies the fate of a contiguous range of tracked lines.
// LinesChangeFull is reported when the range survived as one group at a new position.
type LinesChangeType int

const (
	LinesChangeUnchanged LinesChangeType = iota
	LinesChangeFull
	LinesChangePartial
	LinesChangeDeleted
	LinesChangeInvalid
)

// LinesChangeMoved is the same outcome as LinesChangeFull.
const LinesChangeMoved = LinesChangeFull

var linesChangeTypeNames = map[LinesChangeType]string{ //nolint:gochecknoglobals // lookup table
	LinesChangeUnchanged: "LINES UNCHANGED",
	LinesChangeFull:      "FULL",
	LinesChangePartial:   "PARTIAL",
	LinesChangeDeleted:   "LINES DELETED",
	LinesChangeInvalid:   "LINES INVALID",
}

func (it LinesChangeType) String() string {
	if name, ok := linesChangeTypeNames[it]; ok {
		return name
	}
	return "UNKNOWN"
}

// RequiresUpdate reports whether a reference to the range must be rewritten.
func (it LinesChangeType) RequiresUpdate() bool {
	return it == LinesChangeFull || it == LinesChangePartial || it == LinesChangeDeleted
}
