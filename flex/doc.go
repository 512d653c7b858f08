// Package flex exposes the NVIDIA FleX native API through cgo.
//
// The bindings and the link directives are generated. Run
//
//	go generate ./flex
//
// with GOOS and GOARCH set for the target. flexgen translates flex.h through
// c-for-go, keeping only NvFlex* declarations and NV_FLEX_* macros, and writes
// zflex_link_<os>_<arch>.go with the #cgo LDFLAGS for the vendored libraries
// under FleX/lib.
//
// # Features
//
// Features are read from flexgen.yaml or FLEX_FEATURES:
//
//   - d3d: Direct3D backend, Windows only
//   - cuda: CUDA backend
//   - ext: NvFlexExt helper library for each enabled backend
//
// Build with -tags flexlinked once the files are generated to enable Version
// and Available.
package flex
