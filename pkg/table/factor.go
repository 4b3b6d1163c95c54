package table

// FirstSeenLevels returns the distinct Parameter values of rows in
// first-appearance order. Rows with an empty Parameter contribute the empty
// string as a level, which keeps unlabeled tables well defined.
func FirstSeenLevels(rows []Row) []string {
	seen := make(map[string]bool, 8)
	var levels []string
	for _, r := range rows {
		if seen[r.Parameter] {
			continue
		}
		seen[r.Parameter] = true
		levels = append(levels, r.Parameter)
	}
	return levels
}

// ReverseLevels returns a reversed copy of levels. The input is not
// modified.
func ReverseLevels(levels []string) []string {
	out := make([]string, len(levels))
	for i, l := range levels {
		out[len(levels)-1-i] = l
	}
	return out
}

// Relevel sets the table's Parameter display order.
//
// This is the single place display ordering is applied. Callers that need
// the ridge-plot convention (first input parameter drawn topmost) pass
// ReverseLevels(FirstSeenLevels(t.Rows)).
func (t *Table) Relevel(levels []string) {
	t.Levels = levels
}

// LevelIndex returns a lookup from level value to its position in levels.
func LevelIndex(levels []string) map[string]int {
	idx := make(map[string]int, len(levels))
	for i, l := range levels {
		idx[l] = i
	}
	return idx
}
