package domain

// Advisory is one entry of an externally supplied vulnerability feed:
// an advisory identifier bound to an exact package version.
type Advisory struct {
	// ID is the advisory identifier, e.g. "CVE-2020-0001".
	ID string

	// Name is the affected package name.
	Name string

	// Version is the affected version string, matched verbatim against
	// the installed version's dotted form.
	Version string
}
