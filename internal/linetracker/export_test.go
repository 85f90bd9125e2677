package linetracker

// ShiftUnchanged exports shiftUnchanged for testing.
var ShiftUnchanged = shiftUnchanged //nolint:gochecknoglobals // test export

// ClassifyRange exports classifyRange for testing.
var ClassifyRange = classifyRange //nolint:gochecknoglobals // test export
