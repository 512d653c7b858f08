package linkage

// Entry is one row of the combination matrix.
type Entry struct {
	Config Config
	Plan   *Plan
	Err    error
}

// AllFeatures enumerates every feature set.
func AllFeatures() []Features {
	out := make([]Features, 0, 8)
	for _, d3d := range []bool{false, true} {
		for _, cuda := range []bool{false, true} {
			for _, ext := range []bool{false, true} {
				out = append(out, Features{D3D: d3d, CUDA: cuda, Ext: ext})
			}
		}
	}
	return out
}

// Matrix resolves every combination of platform, pointer width, profile and
// feature set against root.
func Matrix(root string) []Entry {
	var entries []Entry
	for _, o := range SupportedOS {
		for _, width := range []int{32, 64} {
			for _, profile := range []Profile{Debug, Release} {
				for _, f := range AllFeatures() {
					cfg := Config{
						Target:   Target{OS: o, PointerWidth: width},
						Profile:  profile,
						Features: f,
						Root:     root,
					}
					plan, err := Resolve(cfg)
					entries = append(entries, Entry{Config: cfg, Plan: plan, Err: err})
				}
			}
		}
	}
	return entries
}
