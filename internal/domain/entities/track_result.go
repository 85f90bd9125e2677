package entities

// TrackResult pairs a reference with the outcome of tracking it.
// Exactly one of the change fields is set, depending on the reference kind.
type TrackResult struct {
	Reference   Reference
	FileChange  *FileChange
	LineChange  *LineChange
	LinesChange *LinesChange
	Err         error
}

// RequiresUpdate reports whether the tracked reference must be rewritten.
func (it TrackResult) RequiresUpdate() bool {
	switch {
	case it.Err != nil:
		return false
	case it.LineChange != nil:
		return it.LineChange.RequiresUpdate()
	case it.LinesChange != nil:
		return it.LinesChange.RequiresUpdate()
	case it.FileChange != nil:
		return it.FileChange.RequiresUpdate()
	default:
		return false
	}
}

// Status returns the display string of the outcome.
func (it TrackResult) Status() string {
	switch {
	case it.LineChange != nil:
		return it.LineChange.ChangeType.String()
	case it.LinesChange != nil:
		return it.LinesChange.ChangeType.String()
	case it.FileChange != nil:
		return it.FileChange.DisplayName()
	default:
		return ChangeTypeInvalid.String()
	}
}

// AfterPath returns the reference rewritten to its current location.
func (it TrackResult) AfterPath() string {
	switch {
	case it.Err != nil:
		return it.Reference.String()
	case it.LineChange != nil:
		return it.LineChange.AfterPath()
	case it.LinesChange != nil:
		return it.LinesChange.AfterPath()
	case it.FileChange != nil && it.FileChange.Directory:
		return it.FileChange.AfterPath + "/"
	case it.FileChange != nil:
		return it.FileChange.AfterPath
	default:
		return it.Reference.String()
	}
}
