package service

import (
	"slices"
	"strconv"
	"strings"

	"tabcompare-service/internal/compare/model"
	"tabcompare-service/internal/table"
)

// KeySeparator joins key components in the display form of a key.
const KeySeparator = "-"

// Key is the composite identifier of a row.
type Key struct {
	Parts []string
}

// ID is a length-prefixed encoding of the parts. Unlike the display form it
// cannot collide when a part contains the separator.
func (k Key) ID() string {
	var b strings.Builder
	for _, p := range k.Parts {
		b.WriteString(strconv.Itoa(len(p)))
		b.WriteByte(':')
		b.WriteString(p)
	}
	return b.String()
}

// String is the dash-joined display form.
func (k Key) String() string { return strings.Join(k.Parts, KeySeparator) }

func (k Key) hasSeparator() bool {
	for _, p := range k.Parts {
		if strings.Contains(p, KeySeparator) {
			return true
		}
	}
	return false
}

func compareKeys(a, b Key) int { return slices.Compare(a.Parts, b.Parts) }

// BuildKey takes the raw string form of each key column, normalized for
// case and whitespace but never for numeric tolerance.
func BuildKey(row table.Row, keyIdx []int, opt model.Options) Key {
	parts := make([]string, len(keyIdx))
	for i, c := range keyIdx {
		v := table.MissingValue()
		if c >= 0 && c < len(row) {
			v = row[c]
		}
		parts[i] = NormalizeValue(v.String(), opt)
	}
	return Key{Parts: parts}
}

// keyIndex maps key IDs to the first row carrying them.
type keyIndex struct {
	keys  map[string]Key
	first map[string]int
	count map[string]int
	rows  []Key // per row
}

func buildKeyIndex(t table.Table, keyIdx []int, opt model.Options) *keyIndex {
	idx := &keyIndex{
		keys:  make(map[string]Key, len(t.Rows)),
		first: make(map[string]int, len(t.Rows)),
		count: make(map[string]int, len(t.Rows)),
		rows:  make([]Key, len(t.Rows)),
	}
	for i, r := range t.Rows {
		k := BuildKey(r, keyIdx, opt)
		id := k.ID()
		idx.rows[i] = k
		idx.count[id]++
		if _, ok := idx.first[id]; !ok {
			idx.first[id] = i
			idx.keys[id] = k
		}
	}
	return idx
}

// Duplicates lists the rows whose key appears at least twice in one table.
type Duplicates struct {
	Rows []int
	Keys []string // distinct display keys, sorted
}

// FindDuplicates only feeds a warning; it never blocks a run.
func FindDuplicates(t table.Table, keyIdx []int, opt model.Options) Duplicates {
	return buildKeyIndex(t, keyIdx, opt).duplicates()
}

func (idx *keyIndex) duplicates() Duplicates {
	var d Duplicates
	var dupKeys []Key
	for i, k := range idx.rows {
		id := k.ID()
		if idx.count[id] < 2 {
			continue
		}
		d.Rows = append(d.Rows, i)
		if idx.first[id] == i {
			dupKeys = append(dupKeys, k)
		}
	}
	slices.SortFunc(dupKeys, compareKeys)
	for _, k := range dupKeys {
		d.Keys = append(d.Keys, k.String())
	}
	return d
}

func (idx *keyIndex) rowsWithSeparator() []int {
	var out []int
	for i, k := range idx.rows {
		if k.hasSeparator() {
			out = append(out, i)
		}
	}
	return out
}

// Partition splits two key sets into common, only-in-A and only-in-B keys,
// each sorted by key components.
func Partition(keysA, keysB map[string]Key) (common, onlyInA, onlyInB []Key) {
	for id, k := range keysA {
		if _, ok := keysB[id]; ok {
			common = append(common, k)
		} else {
			onlyInA = append(onlyInA, k)
		}
	}
	for id, k := range keysB {
		if _, ok := keysA[id]; !ok {
			onlyInB = append(onlyInB, k)
		}
	}
	slices.SortFunc(common, compareKeys)
	slices.SortFunc(onlyInA, compareKeys)
	slices.SortFunc(onlyInB, compareKeys)
	return common, onlyInA, onlyInB
}

func keyStrings(keys []Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}
