package menuval

// ItemDiff is the difference between two versions of a menu.
// Items are matched by normalized name.
type ItemDiff struct {
	// Added contains items whose name is not in the previous version.
	Added []MenuItem `json:"added"`

	// Removed contains items whose name is not in the new version.
	Removed []MenuItem `json:"removed"`

	// Unchanged contains items present in both versions with the same description.
	Unchanged []MenuItem `json:"unchanged"`

	// Modified contains items present in both versions whose description changed.
	Modified []ModifiedItem `json:"modified"`

	pending []MenuItem
}

// ModifiedItem is an item whose description changed between versions.
type ModifiedItem struct {
	Old MenuItem `json:"old"`
	New MenuItem `json:"new"`
}

// DiffStats contains summary statistics for a diff.
type DiffStats struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Unchanged int `json:"unchanged"`
	Modified  int `json:"modified"`
}

// Stats returns summary statistics for the diff.
func (d *ItemDiff) Stats() DiffStats {
	return DiffStats{
		Added:     len(d.Added),
		Removed:   len(d.Removed),
		Unchanged: len(d.Unchanged),
		Modified:  len(d.Modified),
	}
}

// HasChanges returns true if there are any differences.
func (d *ItemDiff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Modified) > 0
}

// NeedsProcessing returns the new-version items that are added or modified,
// in the order they appear in the new version.
func (d *ItemDiff) NeedsProcessing() []MenuItem {
	return d.pending
}

// DiffItems compares two versions of a menu. Names and descriptions are
// compared in normalized form, so edits to case or punctuation do not count.
// Repeated names are paired in order of appearance.
func DiffItems(oldItems, newItems []MenuItem) *ItemDiff {
	d := &ItemDiff{}

	byName := make(map[string][]int, len(oldItems))
	for i, item := range oldItems {
		key := Normalize(item.Name)
		byName[key] = append(byName[key], i)
	}

	used := make([]bool, len(oldItems))
	for _, item := range newItems {
		key := Normalize(item.Name)
		queue := byName[key]
		if len(queue) == 0 {
			d.Added = append(d.Added, item)
			d.pending = append(d.pending, item)
			continue
		}

		i := queue[0]
		byName[key] = queue[1:]
		used[i] = true

		old := oldItems[i]
		if Normalize(old.Description) == Normalize(item.Description) {
			d.Unchanged = append(d.Unchanged, item)
			continue
		}
		d.Modified = append(d.Modified, ModifiedItem{Old: old, New: item})
		d.pending = append(d.pending, item)
	}

	for i, item := range oldItems {
		if !used[i] {
			d.Removed = append(d.Removed, item)
		}
	}
	return d
}
