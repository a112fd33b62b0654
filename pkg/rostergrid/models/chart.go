package models

// CountBucket is one bar of a count-by-category chart.
type CountBucket struct {
	// Value is the category.
	Value Value `json:"value"`
	// Count is the number of rows holding Value.
	Count int `json:"count"`
}

// TreemapNode is one node of a hierarchical grouping.
type TreemapNode struct {
	// Label is the grouping value at this level (empty for the root).
	Label string `json:"label"`
	// Column is the column this level groups by (empty for the root).
	Column string `json:"column,omitempty"`
	// Count is the number of rows below this node.
	Count int `json:"count"`
	// Children are the next level, in first-appearance order.
	Children []*TreemapNode `json:"children,omitempty"`
}
