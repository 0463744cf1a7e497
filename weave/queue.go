package weave

// pendingQueue holds specification fragments that have not yet been
// attached to a declaration. It is a FIFO over one pass of the driver:
// fragments are pushed in encounter order and drained oldest-first
// exactly once, before the next genuine declaration is processed.
type pendingQueue struct {
	fragments []Fragment
}

func (q *pendingQueue) push(f Fragment) {
	q.fragments = append(q.fragments, f)
}

func (q *pendingQueue) empty() bool {
	return len(q.fragments) == 0
}

// drain returns the queued fragments in push order and resets the
// queue.
func (q *pendingQueue) drain() []Fragment {
	out := q.fragments
	q.fragments = nil
	return out
}
