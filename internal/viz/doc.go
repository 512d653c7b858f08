// Package viz renders link plans for the terminal.
//
// RenderPlan and RenderMatrix produce static output for the CLI. RunExplorer
// starts an interactive view where the target and feature flags can be toggled
// and the resolved linkage updates as they change.
package viz
