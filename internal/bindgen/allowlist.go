package bindgen

import (
	"fmt"
	"regexp"
)

// Kind is a class of C declaration.
type Kind string

const (
	KindFunction Kind = "function"
	KindType     Kind = "type"
	KindConst    Kind = "const"
)

// Allowlist holds the name patterns of declarations exposed to Go. Anything that
// matches no pattern of its kind is left out of the bindings.
type Allowlist struct {
	Functions []string `yaml:"functions"`
	Types     []string `yaml:"types"`
	Consts    []string `yaml:"consts"`
}

// DefaultAllowlist exposes the NvFlex namespace, its eNvFlex enumerators and
// its NV_FLEX_ macros.
var DefaultAllowlist = Allowlist{
	Functions: []string{"^NvFlex"},
	Types:     []string{"^NvFlex"},
	Consts:    []string{"^NvFlex", "^eNvFlex", "^NV_FLEX_"},
}

func (a Allowlist) patterns(k Kind) []string {
	switch k {
	case KindFunction:
		return a.Functions
	case KindType:
		return a.Types
	case KindConst:
		return a.Consts
	}
	return nil
}

// Matcher is a compiled Allowlist.
type Matcher struct {
	rules map[Kind][]*regexp.Regexp
}

// Compile validates every pattern.
func (a Allowlist) Compile() (*Matcher, error) {
	m := &Matcher{rules: make(map[Kind][]*regexp.Regexp)}
	for _, k := range []Kind{KindFunction, KindType, KindConst} {
		for _, p := range a.patterns(k) {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("%w: %s pattern %q: %v", ErrPattern, k, p, err)
			}
			m.rules[k] = append(m.rules[k], re)
		}
	}
	return m, nil
}

// Match reports whether a declaration of kind k named name is exposed.
func (m *Matcher) Match(k Kind, name string) bool {
	for _, re := range m.rules[k] {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
