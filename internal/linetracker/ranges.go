package linetracker

import (
	"sort"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
)

// RangeResult is the outcome of tracking a contiguous range of lines.
// Groups hold maximal runs of consecutive final positions, sorted and disjoint;
// each line carries the original content of the line that landed there.
type RangeResult struct {
	ChangeType entities.LinesChangeType
	Groups     [][]entities.Line
	// Positions maps every original line number to its final number, or -1 when deleted.
	Positions map[int]int
}

// TrackLines tracks every line of a range independently and groups the survivors.
// originals must be ordered by line number.
func (it *Tracker) TrackLines(originals []entities.Line, hunks []entities.DiffHunk) RangeResult {
	positions := make(map[int]int, len(originals))
	contents := make(map[int]string, len(originals))
	// final position -> original number; a later line landing on the same position wins
	landed := make(map[int]int, len(originals))

	for _, original := range originals {
		contents[original.Number] = original.Content
		result := it.TrackLine(original.Number, original.Content, hunks)
		if result.ChangeType == entities.LineChangeDeleted {
			positions[original.Number] = -1
			continue
		}
		positions[original.Number] = result.Line.Number
		landed[result.Line.Number] = original.Number
	}

	survivors := make([]int, 0, len(landed))
	for final := range landed {
		survivors = append(survivors, final)
	}
	sort.Ints(survivors)

	if len(survivors) == 0 {
		return RangeResult{ChangeType: entities.LinesChangeDeleted, Positions: positions}
	}

	groups := make([][]entities.Line, 0)
	for _, run := range GroupConsecutive(survivors) {
		group := make([]entities.Line, 0, len(run))
		for _, final := range run {
			group = append(group, entities.NewLine(final, contents[landed[final]]))
		}
		groups = append(groups, group)
	}

	return RangeResult{
		ChangeType: classifyRange(len(groups), positions),
		Groups:     groups,
		Positions:  positions,
	}
}

// classifyRange compares every surviving line with its original number, so two lines
// landing on one position still count as a move.
func classifyRange(groupCount int, positions map[int]int) entities.LinesChangeType {
	if groupCount > 1 {
		return entities.LinesChangePartial
	}
	for original, final := range positions {
		if final != -1 && final != original {
			return entities.LinesChangeFull
		}
	}
	return entities.LinesChangeUnchanged
}

// GroupConsecutive splits sorted numbers into maximal runs of consecutive integers.
func GroupConsecutive(sorted []int) [][]int {
	var runs [][]int
	for i, n := range sorted {
		if i == 0 || n != sorted[i-1]+1 {
			runs = append(runs, []int{n})
			continue
		}
		runs[len(runs)-1] = append(runs[len(runs)-1], n)
	}
	return runs
}
