package controllers

// PrintResults exports printResults for testing.
var PrintResults = printResults //nolint:gochecknoglobals // test export
