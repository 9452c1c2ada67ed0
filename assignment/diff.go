// assignment/diff.go
package assignment

// diffIDs computes the set difference between an old and a new id list.
// removed holds ids present in old but not in new, added the reverse.
// Order of first occurrence is preserved; duplicates are reported once.
func diffIDs(oldIDs, newIDs []string) (removed, added []string) {
	oldSet := make(map[string]bool, len(oldIDs))
	for _, id := range oldIDs {
		oldSet[id] = true
	}
	newSet := make(map[string]bool, len(newIDs))
	for _, id := range newIDs {
		newSet[id] = true
	}

	seen := make(map[string]bool)
	for _, id := range oldIDs {
		if !newSet[id] && !seen[id] {
			removed = append(removed, id)
			seen[id] = true
		}
	}
	seen = make(map[string]bool)
	for _, id := range newIDs {
		if !oldSet[id] && !seen[id] {
			added = append(added, id)
			seen[id] = true
		}
	}
	return removed, added
}
