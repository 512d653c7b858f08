package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/goflex/internal/linkage"
)

func field(name, value string) string {
	return Label.Render(fmt.Sprintf("%-12s", name)) + Value.Render(value)
}

// RenderPlan shows a resolved plan or the reason resolution failed.
func RenderPlan(cfg linkage.Config, plan *linkage.Plan, err error) string {
	var b strings.Builder
	b.WriteString(Title.Render("NvFlex linkage") + "\n")
	b.WriteString(field("target", cfg.Target.String()) + "\n")
	b.WriteString(field("arch", cfg.Target.GOARCH()) + "\n")
	b.WriteString(field("profile", string(cfg.Profile)) + "\n")
	b.WriteString(field("features", cfg.Features.String()) + "\n")

	if err != nil {
		b.WriteString("\n" + Failed.Render("✗ ") + err.Error())
		return Panel.Render(b.String())
	}

	b.WriteString("\n" + field("search path", plan.SearchPath) + "\n")
	if len(plan.Libraries) == 0 {
		b.WriteString(Subtle.Render("no libraries linked"))
	}
	for i, lib := range plan.Libraries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(OK.Render("✓ ") + lib)
	}
	return Panel.Render(b.String())
}

// RenderMatrix tabulates every combination and its outcome.
func RenderMatrix(entries []linkage.Entry) string {
	header := fmt.Sprintf("%-12s %-8s %-14s %s", "TARGET", "PROFILE", "FEATURES", "RESULT")
	lines := []string{Title.Render(header)}
	for _, e := range entries {
		row := fmt.Sprintf("%-12s %-8s %-14s ", e.Config.Target, e.Config.Profile, e.Config.Features)
		if e.Err != nil {
			lines = append(lines, row+Failed.Render("error"))
			continue
		}
		libs := strings.Join(e.Plan.Libraries, " ")
		if libs == "" {
			libs = "-"
		}
		lines = append(lines, row+OK.Render(libs))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
