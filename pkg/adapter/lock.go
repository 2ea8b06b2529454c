package adapter

// LockMode names the table-lock flavors a caller can request through
// WithTableLock. The set is fixed; each adapter maps modes to whatever
// primitive its dialect supports, or to the documented degradation path.
type LockMode int

const (
	// LockDefault lets the adapter choose its strongest supported mode.
	LockDefault LockMode = iota

	// LockRead allows concurrent readers and blocks writers.
	LockRead

	// LockReadLocal is LockRead that still admits the session's own
	// concurrent inserts where the dialect distinguishes them.
	LockReadLocal

	// LockWrite grants exclusive access for reads and writes.
	LockWrite

	// LockLowPriorityWrite is LockWrite that yields to pending readers
	// where the dialect distinguishes priorities.
	LockLowPriorityWrite
)

var lockModeNames = map[LockMode]string{
	LockDefault:          "default",
	LockRead:             "read",
	LockReadLocal:        "read-local",
	LockWrite:            "write",
	LockLowPriorityWrite: "low-priority-write",
}

// String returns the mode's canonical name.
func (m LockMode) String() string {
	if name, ok := lockModeNames[m]; ok {
		return name
	}
	return "invalid"
}

// Valid reports whether the mode is one of the fixed enumeration values.
func (m LockMode) Valid() bool {
	_, ok := lockModeNames[m]
	return ok
}
