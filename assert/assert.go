package assert

import "github.com/oomph-ac/xpbd/oerror"

// IsTrue panics with an oerror if ok is false. It is reserved for invariants whose violation is a
// programming error rather than a runtime condition.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
