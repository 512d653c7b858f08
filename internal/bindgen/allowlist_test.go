package bindgen

import (
	"errors"
	"testing"
)

func TestDefaultAllowlistMatch(t *testing.T) {
	m, err := DefaultAllowlist.Compile()
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	tests := []struct {
		kind Kind
		name string
		want bool
	}{
		{KindFunction, "NvFlexInit", true},
		{KindFunction, "NvFlexExtCreateForceFieldCallback", true},
		{KindFunction, "memcpy", false},
		{KindType, "NvFlexSolverDesc", true},
		{KindType, "size_t", false},
		{KindConst, "NV_FLEX_VERSION", true},
		{KindConst, "eNvFlexMapWait", true},
		{KindConst, "eNvFlexPhaseSelfCollide", true},
		{KindConst, "eNvFlexExtModeForce", true},
		{KindConst, "eOtherMode", false},
		{KindType, "eNvFlexMapWait", false},
		{KindConst, "NV_FLEX", false},
		{KindFunction, "NV_FLEX_VERSION", false},
		{KindType, "MyNvFlexWrapper", false},
	}
	for _, tt := range tests {
		if got := m.Match(tt.kind, tt.name); got != tt.want {
			t.Errorf("%s %s: expected %v, got %v", tt.kind, tt.name, tt.want, got)
		}
	}
}

func TestAllowlistCompileError(t *testing.T) {
	_, err := Allowlist{Types: []string{"NvFlex("}}.Compile()
	if !errors.Is(err, ErrPattern) {
		t.Errorf("expected ErrPattern, got %v", err)
	}
}
