package models

// Counter is a named monotonic sequence document. Seq holds the last
// issued value and is only ever moved forward by an atomic $inc.
type Counter struct {
	Name string `bson:"name" json:"name"`
	Seq  int64  `bson:"seq" json:"seq"`
}
