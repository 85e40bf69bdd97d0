package types

// Int64List is a set-like slice of numeric reference IDs stored as a JSON
// column. Driver zip coverage arrives from the driver app as strings, so
// membership checks coerce through int64 once at the boundary.
type Int64List []int64

// Contains reports whether v is present in the list.
func (l Int64List) Contains(v int64) bool {
	for _, id := range l {
		if id == v {
			return true
		}
	}
	return false
}
