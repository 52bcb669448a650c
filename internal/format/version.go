package format

// Version is the observed file format generation. Ordered: A < B < C.
// It is fixed for a decode session and selects conditional parsing
// branches, e.g. the redundant prefix preceding geometry elements after
// the first one in version B streams.
type Version int

const (
	VersionUnknown Version = iota
	VersionA
	VersionB
	VersionC
)

func (v Version) String() string {
	switch v {
	case VersionA:
		return "A"
	case VersionB:
		return "B"
	case VersionC:
		return "C"
	default:
		return "Unknown"
	}
}

// Known reports whether v is a concrete version.
func (v Version) Known() bool {
	return v == VersionA || v == VersionB || v == VersionC
}

// AtLeast reports whether v is o or newer. Unknown is never at least
// anything.
func (v Version) AtLeast(o Version) bool {
	return v.Known() && o.Known() && v >= o
}

// Candidates lists concrete versions newest first, the order trial
// decoding walks when the version was not supplied.
func Candidates() []Version {
	return []Version{VersionC, VersionB, VersionA}
}
