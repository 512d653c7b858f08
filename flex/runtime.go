//go:build flexlinked

package flex

/*
#include "flex.h"
*/
import "C"

// Version returns the version of the linked native library.
func Version() int {
	return int(C.NvFlexGetVersion())
}

// Available reports whether a native library is linked into the binary.
func Available() bool { return true }
