package commands

// SplitContent exports splitContent for testing.
var SplitContent = splitContent //nolint:gochecknoglobals // test export
