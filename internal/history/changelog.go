// Package history classifies what happened to a file or directory path by walking
// the change records of the files sharing its name.
package history

import (
	"regexp"
	"strings"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
)

const commitPrefix = "Commit: "

// onelineCommit matches "git log --oneline" commit lines.
var onelineCommit = regexp.MustCompile(`^([0-9a-f]{6,40})(\s.*)?$`)

// RecordKind tells commit markers apart from path changes.
type RecordKind int

const (
	RecordCommit RecordKind = iota
	RecordChange
)

// Record is one parsed change-log line.
type Record struct {
	Kind     RecordKind
	Revision string
	// Letter is the change status: A, M, D, R, C or T.
	Letter  byte
	Path    string
	NewPath string
	Raw     string
}

// Target is the path the record leaves the file at.
func (it Record) Target() string {
	if it.NewPath != "" {
		return it.NewPath
	}
	return it.Path
}

// Mentions reports whether either path of the record is fragment or lies under it.
// Files sharing a name in another directory never match.
func (it Record) Mentions(fragment string) bool {
	return underPath(it.Path, fragment) || (it.NewPath != "" && underPath(it.NewPath, fragment))
}

func underPath(filePath, fragment string) bool {
	fragment = strings.TrimSuffix(fragment, "/")
	if fragment == "" {
		return false
	}
	return filePath == fragment || strings.HasPrefix(filePath, fragment+"/")
}

// IsDeletion reports whether the record deletes its path.
func (it Record) IsDeletion() bool {
	return it.Kind == RecordChange && it.Letter == 'D'
}

// ParseChangeLog parses change-log lines, skipping blank ones.
func ParseChangeLog(lines []string) ([]Record, error) {
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		record, err := ParseRecord(line)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// ParseRecord parses "Commit: <sha>", "<sha> <subject>" and "<letter>[score]\t<path>[\t<newPath>]".
func ParseRecord(line string) (Record, error) {
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, commitPrefix) {
		revision := strings.TrimSpace(strings.TrimPrefix(trimmed, commitPrefix))
		if revision == "" {
			return Record{}, entities.NewTrackingError(entities.ErrMalformedHistoryRecord, line, "commit marker without revision")
		}
		return Record{Kind: RecordCommit, Revision: revision, Raw: line}, nil
	}
	if match := onelineCommit.FindStringSubmatch(trimmed); match != nil {
		return Record{Kind: RecordCommit, Revision: match[1], Raw: line}, nil
	}

	fields := strings.Split(trimmed, "\t")
	if len(fields) < 2 || fields[0] == "" {
		return Record{}, entities.NewTrackingError(entities.ErrMalformedHistoryRecord, line, "expected <letter>\\t<path>")
	}

	record := Record{Kind: RecordChange, Letter: fields[0][0], Path: fields[1], Raw: line}
	switch record.Letter {
	case 'A', 'M', 'D', 'T':
		if len(fields) != 2 {
			return Record{}, entities.NewTrackingError(entities.ErrMalformedHistoryRecord, line, "expected a single path")
		}
	case 'R', 'C':
		if len(fields) != 3 {
			return Record{}, entities.NewTrackingError(entities.ErrMalformedHistoryRecord, line, "expected source and destination paths")
		}
		record.NewPath = fields[2]
	default:
		return Record{}, entities.NewTrackingError(entities.ErrMalformedHistoryRecord, line, "unknown change letter")
	}
	return record, nil
}

// classify turns the last record reached by a traversal into a file change.
// requested is the path the reference was created with.
func classify(requested string, record Record) (entities.FileChange, error) {
	switch record.Letter {
	case 'A', 'C':
		if record.Target() != requested {
			return entities.FileChange{ChangeType: entities.ChangeTypeMoved, AfterPath: record.Target()}, nil
		}
		return entities.FileChange{ChangeType: entities.ChangeTypeAdded, AfterPath: record.Target()}, nil
	case 'M', 'T':
		if record.Path != requested {
			return entities.FileChange{ChangeType: entities.ChangeTypeMoved, AfterPath: record.Path}, nil
		}
		return entities.FileChange{ChangeType: entities.ChangeTypeModified, AfterPath: record.Path}, nil
	case 'D':
		return entities.FileChange{ChangeType: entities.ChangeTypeDeleted, AfterPath: requested}, nil
	case 'R':
		if record.NewPath == requested {
			return entities.FileChange{ChangeType: entities.ChangeTypeModified, AfterPath: record.NewPath}, nil
		}
		return entities.FileChange{ChangeType: entities.ChangeTypeMoved, AfterPath: record.NewPath}, nil
	default:
		return entities.FileChange{}, entities.NewTrackingError(entities.ErrChangeTypeExtraction, requested, record.Raw)
	}
}
