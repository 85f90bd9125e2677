package linetracker

import (
	"sort"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
)

type changeKind int

const (
	kindAdded changeKind = iota
	kindDeleted
)

type changedLine struct {
	kind   changeKind
	number int
}

// shiftUnchanged moves a line that survived a hunk by the lines added and deleted above it.
// An addition directly followed by a deletion at the same number is a rewrite in place
// and does not move anything. Additions are compared against the moving position,
// deletions against the position before the hunk.
func shiftUnchanged(deleted, added []entities.Line, current int) int {
	changes := make([]changedLine, 0, len(added)+len(deleted))
	for _, l := range added {
		changes = append(changes, changedLine{kind: kindAdded, number: l.Number})
	}
	for _, l := range deleted {
		changes = append(changes, changedLine{kind: kindDeleted, number: l.Number})
	}
	sort.SliceStable(changes, func(i, j int) bool { return changes[i].number < changes[j].number })

	effective := make([]changedLine, 0, len(changes))
	for i := 0; i < len(changes); i++ {
		if i+1 < len(changes) &&
			changes[i].kind == kindAdded && changes[i+1].kind == kindDeleted &&
			changes[i].number == changes[i+1].number {
			i++
			continue
		}
		effective = append(effective, changes[i])
	}

	previous := current
	for _, c := range effective {
		switch {
		case c.kind == kindAdded && c.number <= current:
			current++
		case c.kind == kindDeleted && c.number <= previous:
			current--
		}
	}
	return current
}
