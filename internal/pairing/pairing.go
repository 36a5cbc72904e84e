// Package pairing suggests invite groupings for guests that have not been
// assigned to an invite yet. The output is advisory: nothing is written, the
// admin UI turns accepted suggestions into invites.
package pairing

import (
	"strings"

	"github.com/samandjonah/wedding-api/internal/model"
)

// Suggest partitions the given guests into groups of one or two. The input
// order must be stable (callers pass guests sorted by name); the algorithm is
// deterministic for a given order.
//
// Phase one pairs couple-type guests that share a last name: for each unused
// couple guest, scan forward for the first unused couple guest whose final
// whitespace-delimited name token matches case-insensitively, and emit the
// two as a group. First match wins; guests whose name has no last-name token
// cannot be paired this way. Phase two emits every remaining guest, whatever
// its invite type, as a solo group.
func Suggest(guests []model.Guest) [][]model.Guest {
	suggestions := make([][]model.Guest, 0, len(guests))
	used := make(map[string]bool, len(guests))

	for i := range guests {
		if used[guests[i].ID] || guests[i].InviteType != model.InviteTypeCouple {
			continue
		}
		last, ok := lastName(guests[i].Name)
		if !ok {
			continue
		}

		for j := i + 1; j < len(guests); j++ {
			if used[guests[j].ID] || guests[j].InviteType != model.InviteTypeCouple {
				continue
			}
			otherLast, ok := lastName(guests[j].Name)
			if !ok {
				continue
			}
			if strings.EqualFold(last, otherLast) {
				suggestions = append(suggestions, []model.Guest{guests[i], guests[j]})
				used[guests[i].ID] = true
				used[guests[j].ID] = true
				break
			}
		}
	}

	for _, g := range guests {
		if !used[g.ID] {
			suggestions = append(suggestions, []model.Guest{g})
			used[g.ID] = true
		}
	}

	return suggestions
}

// lastName returns the final whitespace-delimited token of name. Names with
// fewer than two tokens have no usable last name.
func lastName(name string) (string, bool) {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return "", false
	}
	return fields[len(fields)-1], true
}
