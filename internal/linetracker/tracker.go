// Package linetracker relocates tracked lines across a sequence of diff hunks.
//
// A tracked line that was not touched by a hunk only shifts by the lines added
// and deleted above it. A tracked line that was deleted is matched against the
// added lines of the same hunk, first by SimHash-ranked fuzzy mapping and then by
// looking for the line being split over several consecutive added lines. When
// both fail the line is reported deleted. Tracking never fails: ambiguity ends in
// a Deleted classification.
package linetracker

import (
	"sort"
	"strings"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
	"github.com/rios0rios0/reftrack/internal/hashing"
	"github.com/rios0rios0/reftrack/internal/similarity"
)

const (
	contextHammingWeight = 0.40
	contentHammingWeight = 0.60
	contentScoreWeight   = 0.6
	contextScoreWeight   = 0.4
	scoreStep            = 0.05
	contextSeparator     = ", "
)

// Options tunes the relocation thresholds.
type Options struct {
	ShingleSize int
	HashBits    int
	// RoundScores rounds each mapping score to the nearest 0.05 before comparing it.
	RoundScores bool
	// MappingFloor is the score a candidate must beat to be considered at all.
	MappingFloor float64
	// MappingAccept is the score the best candidate must reach to be accepted.
	MappingAccept float64
	// SplitAccept is the similarity a split concatenation must reach.
	SplitAccept float64
}

// DefaultOptions returns the tuned thresholds.
func DefaultOptions() Options {
	return Options{
		ShingleSize:   hashing.DefaultShingleSize,
		HashBits:      hashing.DefaultHashSize,
		RoundScores:   true,
		MappingFloor:  0.45,
		MappingAccept: 0.65,
		SplitAccept:   0.85,
	}
}

// OptionsFrom converts the tracking section of the settings file.
func OptionsFrom(settings entities.TrackingSettings) Options {
	return Options{
		ShingleSize:   settings.ShingleSize,
		HashBits:      settings.HashBits,
		RoundScores:   settings.RoundScores,
		MappingFloor:  settings.MappingFloor,
		MappingAccept: settings.MappingAccept,
		SplitAccept:   settings.SplitAccept,
	}
}

// Result is the outcome of tracking one line.
type Result struct {
	ChangeType    entities.LineChangeType
	Line          entities.Line
	Modifications int
}

// Tracker relocates lines. It holds no mutable state and is safe for concurrent use.
type Tracker struct {
	options       Options
	fingerprinter hashing.Fingerprinter
}

// NewTracker creates a Tracker.
func NewTracker(options Options) *Tracker {
	return &Tracker{
		options:       options,
		fingerprinter: hashing.NewFingerprinter(options.ShingleSize, options.HashBits),
	}
}

// TrackLine follows the line originally at number with the given content through hunks,
// which must be ordered from the anchor revision to the target revision.
func (it *Tracker) TrackLine(number int, content string, hunks []entities.DiffHunk) Result {
	current := number
	modifications := 0
	deleted := false
	var last entities.DiffHunk

	for _, hunk := range hunks {
		last = entities.DiffHunk{
			DeletedLines: trimContents(hunk.DeletedLines),
			AddedLines:   trimContents(hunk.AddedLines),
		}
		added := last.AddedLines

		if deletedLine, ok := last.DeletedAt(current); ok {
			target, found := it.relocateDeleted(deletedLine, added)
			if !found {
				deleted = true
				break
			}
			current = target
			modifications++
			continue
		}

		previous := current
		current = shiftUnchanged(last.DeletedLines, added, current)
		if current != previous {
			modifications++
		}
	}

	result := Result{Modifications: modifications}
	switch {
	case deleted:
		result.ChangeType = entities.LineChangeDeleted
	case modifications == 0 || current == number:
		result.ChangeType = entities.LineChangeUnchanged
	default:
		result.ChangeType = entities.LineChangeMoved
	}

	if line, ok := last.AddedAt(current); ok {
		result.Line = entities.NewLine(line.Number, line.Content)
	} else {
		result.Line = entities.NewLine(current, strings.TrimSpace(content))
	}
	return result
}

// relocateDeleted looks for the new position of a deleted line among the added lines of its hunk.
func (it *Tracker) relocateDeleted(deletedLine entities.Line, added []entities.Line) (int, bool) {
	if len(added) > 0 {
		if line, ok := it.mapLine(deletedLine, it.rankCandidates(deletedLine, added)); ok {
			return line.Number, true
		}
	}
	if line, ok := it.detectSplit(deletedLine.Content, added); ok {
		return line.Number, true
	}
	return 0, false
}

type candidate struct {
	line  entities.Line
	score float64
}

// rankCandidates orders the added lines by a weighted SimHash distance to the deleted
// line, closest first. Equal distances keep the diff order.
func (it *Tracker) rankCandidates(deletedLine entities.Line, added []entities.Line) []candidate {
	contextHash := it.fingerprinter.SimHash(deletedLine.JoinedContext(contextSeparator))
	contentHash := it.fingerprinter.SimHash(deletedLine.Content)

	candidates := make([]candidate, 0, len(added))
	for _, line := range added {
		contextDistance := hashing.Hamming(contextHash, it.fingerprinter.SimHash(line.JoinedContext(contextSeparator)))
		contentDistance := hashing.Hamming(contentHash, it.fingerprinter.SimHash(line.Content))
		candidates = append(candidates, candidate{
			line:  line,
			score: contextHammingWeight*float64(contextDistance) + contentHammingWeight*float64(contentDistance),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score < candidates[j].score })
	return candidates
}

// mapLine keeps the first candidate with the highest score above the floor and
// accepts it only if that score reaches the acceptance threshold.
func (it *Tracker) mapLine(deletedLine entities.Line, candidates []candidate) (entities.Line, bool) {
	best := candidate{score: it.options.MappingFloor}
	found := false

	for _, c := range candidates {
		score := contentScoreWeight*similarity.Levenshtein(deletedLine.Content, c.line.Content) +
			contextScoreWeight*similarity.Context(deletedLine, c.line)
		if it.options.RoundScores {
			score = similarity.RoundToStep(score, scoreStep)
		}
		if score > best.score {
			best = candidate{line: c.line, score: score}
			found = true
		}
	}

	if !found || best.score < it.options.MappingAccept {
		return entities.Line{}, false
	}
	return best.line, true
}

// detectSplit checks whether the deleted content was broken over consecutive added
// lines. Concatenation stops at a blank line or as soon as similarity stops growing.
func (it *Tracker) detectSplit(deletedContent string, added []entities.Line) (entities.Line, bool) {
	bestScore := -1.0
	bestSpan := 0
	var bestLine entities.Line

	for i := 0; i < len(added)-1; i++ {
		span := 1
		previous := similarity.Levenshtein(deletedContent, added[i].Content)
		concatenated := added[i].Content

		for j := i + 1; j < len(added); j++ {
			if strings.TrimSpace(added[j].Content) == "" {
				break
			}
			concatenated += added[j].Content
			span++

			score := similarity.Levenshtein(deletedContent, concatenated)
			if score >= bestScore {
				bestScore, bestSpan, bestLine = score, span, added[i]
			}
			if score <= previous {
				break
			}
			previous = score
		}
	}

	if bestScore >= it.options.SplitAccept && bestSpan > 1 {
		return bestLine, true
	}
	return entities.Line{}, false
}

func trimContents(lines []entities.Line) []entities.Line {
	trimmed := make([]entities.Line, 0, len(lines))
	for _, l := range lines {
		t := l
		t.Content = strings.TrimSpace(l.Content)
		trimmed = append(trimmed, t)
	}
	return trimmed
}
