// Package views derives chart data from a table.
package views

import (
	"sort"

	"github.com/ukaji3/rostergrid/pkg/rostergrid/models"
)

// CountBy counts rows per distinct value of column, largest first.
// Ties keep first-appearance order. Empty values are not counted.
// An unknown column yields nil.
func CountBy(t *models.Table, column string) []models.CountBucket {
	col := t.ColumnIndex(column)
	if col < 0 {
		return nil
	}

	var buckets []models.CountBucket
	index := make(map[models.Value]int)
	for _, row := range t.Rows {
		v := row[col]
		if v.IsEmpty() {
			continue
		}
		k := key(v)
		if i, ok := index[k]; ok {
			buckets[i].Count++
			continue
		}
		index[k] = len(buckets)
		buckets = append(buckets, models.CountBucket{Value: v, Count: 1})
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	return buckets
}

// Distinct returns the distinct values of column in first-appearance order,
// including the empty value if present.
func Distinct(t *models.Table, column string) []models.Value {
	col := t.ColumnIndex(column)
	if col < 0 {
		return nil
	}
	seen := make(map[models.Value]struct{})
	var out []models.Value
	for _, row := range t.Rows {
		k := key(row[col])
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, row[col])
	}
	return out
}

// Treemap groups rows along the path columns into a hierarchy.
// Rows with an empty value anywhere on the path are dropped.
// Unknown path columns yield an empty root.
func Treemap(t *models.Table, path ...string) *models.TreemapNode {
	root := &models.TreemapNode{}

	cols := make([]int, len(path))
	for i, name := range path {
		cols[i] = t.ColumnIndex(name)
		if cols[i] < 0 {
			return root
		}
	}

	lookup := make(map[*models.TreemapNode]map[string]*models.TreemapNode)
rows:
	for _, row := range t.Rows {
		for _, c := range cols {
			if row[c].IsEmpty() {
				continue rows
			}
		}

		node := root
		node.Count++
		for depth, c := range cols {
			label := row[c].String()
			children := lookup[node]
			if children == nil {
				children = make(map[string]*models.TreemapNode)
				lookup[node] = children
			}
			child, ok := children[label]
			if !ok {
				child = &models.TreemapNode{Label: label, Column: path[depth]}
				children[label] = child
				node.Children = append(node.Children, child)
			}
			child.Count++
			node = child
		}
	}
	return root
}

// key normalizes a value for use as a map key.
func key(v models.Value) models.Value {
	if v.Kind == models.KindDate {
		return models.Value{Kind: models.KindDate, Str: v.Time.UTC().Format("2006-01-02T15:04:05.999999999")}
	}
	return v
}
