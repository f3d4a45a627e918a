package domain

import "strings"

// AccountKind distinguishes postable leaf accounts from grouping accounts.
type AccountKind string

const (
	// KindLeaf accounts accept postings ("analytical" accounts).
	KindLeaf AccountKind = "LEAF"
	// KindGroup accounts only aggregate their children ("synthetic" accounts).
	KindGroup AccountKind = "GROUP"
)

// Account is one row of the chart of accounts. The chart is seeded reference
// data; the core never creates or mutates accounts, it only resolves codes.
type Account struct {
	Code string      `json:"code"` // Dot-segmented hierarchy, e.g. "4.1.1.01"
	Name string      `json:"name"`
	Kind AccountKind `json:"kind"`
}

// IsLeaf reports whether the account can be used as a posting target.
func (a Account) IsLeaf() bool {
	return a.Kind == KindLeaf
}

// ParentCode returns the code of the enclosing group, or "" for a root code.
func (a Account) ParentCode() string {
	idx := strings.LastIndex(a.Code, ".")
	if idx < 0 {
		return ""
	}
	return a.Code[:idx]
}

// IsDescendantOf reports whether the account sits under the given group code.
func (a Account) IsDescendantOf(groupCode string) bool {
	return strings.HasPrefix(a.Code, groupCode+".")
}
