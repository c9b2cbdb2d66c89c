package pager

// Window locates one page inside the merged sequence "local records, then remote records".
type Window struct {
	// LocalStart and LocalEnd bound the slice of filtered local records on the page
	LocalStart int
	LocalEnd   int

	// RemoteSkip is the offset into the filtered remote catalog
	RemoteSkip int
}

// LocalLen is the number of local records on the page.
func (w Window) LocalLen() int {
	return w.LocalEnd - w.LocalStart
}

// ComputeWindow returns the window of page pageIndex (1-based). Local records
// always come first, so a page starts inside the local records while any are
// left and continues into the remote catalog from offset 0.
func ComputeWindow(pageIndex, pageSize, localCount int) Window {
	start := (pageIndex - 1) * pageSize
	return Window{
		LocalStart: min(start, localCount),
		LocalEnd:   min(start+pageSize, localCount),
		RemoteSkip: max(0, start-localCount),
	}
}
