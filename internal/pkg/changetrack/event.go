package changetrack

// ItemChange describes one item-level mutation of a List: the item that was
// added or removed and the index it occupied at that moment. The index is a
// snapshot and may be stale after later mutations.
type ItemChange[T any] struct {
	Item  T
	Index int
}
