package pdf

import (
	"cmp"
	"path/filepath"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// resolveOrder returns the definitive processing order for files.
func resolveOrder(files []FileRecord, opts Options) []FileRecord {
	if len(opts.CustomFileOrder) > 0 {
		return customOrder(files, opts.CustomFileOrder)
	}
	return sortFiles(files, opts.SortBy, opts.Descending)
}

// customOrder places files referenced by order first, in that order, then
// every other file in discovery order. Entries are matched by base name and
// entries with no matching file are dropped.
func customOrder(files []FileRecord, order []string) []FileRecord {
	byName := make(map[string]FileRecord, len(files))
	for _, f := range files {
		byName[f.Name] = f
	}

	placed := make(map[string]bool, len(order))
	ordered := make([]FileRecord, 0, len(files))

	for _, entry := range order {
		name := filepath.Base(entry)
		if placed[name] {
			continue
		}
		placed[name] = true
		if f, ok := byName[name]; ok {
			ordered = append(ordered, f)
		}
	}

	for _, f := range files {
		if !placed[f.Name] {
			ordered = append(ordered, f)
		}
	}

	return ordered
}

func sortFiles(files []FileRecord, key SortKey, descending bool) []FileRecord {
	sorted := slices.Clone(files)

	var compare func(a, b FileRecord) int
	switch key {
	case SortByDate:
		compare = func(a, b FileRecord) int {
			return a.ModTime.Compare(b.ModTime)
		}
	case SortBySize:
		compare = func(a, b FileRecord) int {
			return cmp.Compare(a.Size, b.Size)
		}
	default:
		col := nameCollator()
		compare = func(a, b FileRecord) int {
			return col.CompareString(a.Name, b.Name)
		}
	}

	slices.SortStableFunc(sorted, compare)
	if descending {
		slices.Reverse(sorted)
	}
	return sorted
}

// nameCollator compares names ignoring case and accents, with digit runs
// compared by numeric value ("file2" < "file10"). Collators are not safe
// for concurrent use, so each sort builds its own.
func nameCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics, collate.Numeric)
}
