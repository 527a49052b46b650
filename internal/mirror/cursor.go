package mirror

// DefaultMaxPath is the default path capacity for a Cursor. It leaves
// headroom under the common 4096-byte path limit for a trailing
// separator and short names appended by callers.
const DefaultMaxPath = 4084

// separator is the path separator used throughout the walk. Both the
// local and SFTP backends accept forward slashes.
const separator = '/'

// Cursor is a growable path the walker mutates in place as it descends
// and ascends the tree. Pushes and pops are strictly paired per
// traversal step, so after a walk the cursor reads back exactly what it
// held before.
//
// Pushes past the capacity truncate silently; Clamped reports whether
// that ever happened.
type Cursor struct {
	buf     []byte
	max     int
	clamped bool
}

// NewCursor creates a Cursor holding path, with the given capacity in
// bytes. A non-positive max gets DefaultMaxPath.
func NewCursor(path string, maxLen int) *Cursor {
	if maxLen <= 0 {
		maxLen = DefaultMaxPath
	}

	cursor := &Cursor{buf: make([]byte, 0, maxLen), max: maxLen}
	cursor.append(path)

	return cursor
}

// PushSegment appends a path segment, inserting a separator first
// unless the cursor is empty or already ends with one.
func (c *Cursor) PushSegment(segment string) {
	if len(c.buf) > 0 && c.buf[len(c.buf)-1] != separator {
		c.append(string(separator))
	}

	c.append(segment)
}

// PopLastSegment removes the last segment but keeps its leading
// separator, leaving the cursor ready for the next PushSegment at the
// same level. A cursor with no separator empties.
func (c *Cursor) PopLastSegment() {
	c.buf = c.buf[:c.lastSeparator()+1]
}

// PopLevel removes the last segment and its leading separator,
// ascending one directory level. A cursor with no separator empties.
func (c *Cursor) PopLevel() {
	idx := c.lastSeparator()
	if idx < 0 {
		idx = 0
	}

	c.buf = c.buf[:idx]
}

// Base returns the last segment of the path, ignoring trailing
// separators. An empty or all-separator cursor yields "".
func (c *Cursor) Base() string {
	end := len(c.buf)
	for end > 0 && c.buf[end-1] == separator {
		end--
	}

	start := end
	for start > 0 && c.buf[start-1] != separator {
		start--
	}

	return string(c.buf[start:end])
}

// Clone returns an independent copy, used for parallel subtree walks.
func (c *Cursor) Clone() *Cursor {
	clone := &Cursor{buf: make([]byte, len(c.buf), c.max), max: c.max, clamped: c.clamped}
	copy(clone.buf, c.buf)

	return clone
}

// Clamped reports whether any push was truncated by the capacity.
func (c *Cursor) Clamped() bool {
	return c.clamped
}

// absorbClamp carries a clone's clamp flag back onto c, so truncation
// inside a parallel subtree walk still surfaces on the root cursor.
func (c *Cursor) absorbClamp(clone *Cursor) {
	if clone.clamped {
		c.clamped = true
	}
}

// String returns the current path.
func (c *Cursor) String() string {
	return string(c.buf)
}

// Len returns the current path length in bytes.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// append adds s, truncating at capacity.
func (c *Cursor) append(s string) {
	room := c.max - len(c.buf)
	if room <= 0 {
		c.clamped = true

		return
	}

	if len(s) > room {
		s = s[:room]
		c.clamped = true
	}

	c.buf = append(c.buf, s...)
}

// lastSeparator returns the index of the last separator, or -1.
func (c *Cursor) lastSeparator() int {
	for i := len(c.buf) - 1; i >= 0; i-- {
		if c.buf[i] == separator {
			return i
		}
	}

	return -1
}
