// Package linkage resolves how the prebuilt NvFlex libraries are linked for a
// given build target.
//
// A Config names the target platform, build profile and enabled features. Resolve
// turns it into a Plan: the vendored directory holding the native binaries and the
// ordered list of libraries to link.
//
//	plan, err := linkage.Resolve(linkage.Config{
//		Target:   linkage.Target{OS: linkage.Linux, PointerWidth: 64},
//		Profile:  linkage.Release,
//		Features: linkage.Features{CUDA: true, Ext: true},
//		Root:     ".",
//	})
//	// plan.Libraries == []string{"NvFlexReleaseCUDA_x64", "NvFlexExtReleaseCUDA_x64"}
//
// # Platform rules
//
// The D3D backend only exists on Windows. Linux builds must be 64-bit. Windows
// treats any pointer width other than 64 as the legacy x86 variant.
package linkage
