package entities

// HistoryHop is one known location of a tracked file: the path it had at a revision.
// FromUncommittedState marks the working copy, which has no revision of its own.
type HistoryHop struct {
	Revision             string
	Path                 string
	FromUncommittedState bool
}

// FileChange is the outcome of resolving the history of a file or directory path.
type FileChange struct {
	ChangeType ChangeType
	AfterPath  string
	// HistoryHops is ordered from the anchor revision to the latest known location.
	HistoryHops                []HistoryHop
	DeletionsAndAdditionsCount int
	ErrorMessage               string
	Directory                  bool
}

// DisplayName returns the human readable change type, prefixed for directories.
func (it FileChange) DisplayName() string {
	if it.Directory && it.ChangeType != ChangeTypeModified {
		return "DIRECTORY " + it.ChangeType.String()
	}
	return it.ChangeType.String()
}

// RequiresUpdate reports whether the reference to the path must be rewritten.
func (it FileChange) RequiresUpdate() bool {
	return it.ChangeType.RequiresUpdate()
}

// LastHop returns the most recent known location, if any.
func (it FileChange) LastHop() (HistoryHop, bool) {
	if len(it.HistoryHops) == 0 {
		return HistoryHop{}, false
	}
	return it.HistoryHops[len(it.HistoryHops)-1], true
}

// NewInvalidFileChange builds the result reported for a reference that failed to resolve.
func NewInvalidFileChange(err error) FileChange {
	return FileChange{ChangeType: ChangeTypeInvalid, ErrorMessage: err.Error()}
}
