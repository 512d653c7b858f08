//go:build !flexlinked

package flex

import "testing"

func TestStubRuntime(t *testing.T) {
	if Available() {
		t.Error("stub build must not report a linked library")
	}
	if v := Version(); v != 0 {
		t.Errorf("expected version 0, got %d", v)
	}
}
