package models

// AccountKind distinguishes postable leaves from grouping nodes.
type AccountKind string

const (
	KindLeaf  AccountKind = "LEAF"
	KindGroup AccountKind = "GROUP"
)

// Account is one row of the seeded chart of accounts. Reference data; the
// application only reads it.
type Account struct {
	Code string      `json:"code"` // Primary Key, dot-segmented hierarchy
	Name string      `json:"name"`
	Kind AccountKind `json:"kind"`
}
