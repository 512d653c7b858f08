package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/goflex/internal/linkage"
)

const (
	rowOS = iota
	rowWidth
	rowProfile
	rowD3D
	rowCUDA
	rowExt
	rowCount
)

var rowNames = [rowCount]string{"os", "width", "profile", "d3d", "cuda", "ext"}

// Explorer is the bubbletea model behind RunExplorer.
type Explorer struct {
	cfg    linkage.Config
	cursor int
	plan   *linkage.Plan
	err    error
}

// NewExplorer starts from cfg. Unset fields get usable defaults.
func NewExplorer(cfg linkage.Config) *Explorer {
	if !cfg.Target.OS.Supported() {
		cfg.Target.OS = linkage.Windows
	}
	if cfg.Target.PointerWidth == 0 {
		cfg.Target.PointerWidth = 64
	}
	if cfg.Profile == "" {
		cfg.Profile = linkage.Release
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}
	// Arch only shapes build constraints; toggling the width must not be pinned by it.
	cfg.Target.Arch = ""
	m := &Explorer{cfg: cfg}
	m.resolve()
	return m
}

func (m *Explorer) resolve() {
	m.plan, m.err = linkage.Resolve(m.cfg)
}

func (m Explorer) Init() tea.Cmd { return nil }

func (m Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < rowCount-1 {
			m.cursor++
		}
	case "left", "h":
		m.change(-1)
	case "right", "l", "enter", " ":
		m.change(1)
	}
	return m, nil
}

func (m *Explorer) change(dir int) {
	f := &m.cfg.Features
	switch m.cursor {
	case rowOS:
		m.cfg.Target.OS = cycle(linkage.SupportedOS, m.cfg.Target.OS, dir)
	case rowWidth:
		if m.cfg.Target.PointerWidth == 64 {
			m.cfg.Target.PointerWidth = 32
		} else {
			m.cfg.Target.PointerWidth = 64
		}
	case rowProfile:
		m.cfg.Profile = cycle([]linkage.Profile{linkage.Debug, linkage.Release}, m.cfg.Profile, dir)
	case rowD3D:
		f.D3D = !f.D3D
	case rowCUDA:
		f.CUDA = !f.CUDA
	case rowExt:
		f.Ext = !f.Ext
	}
	m.resolve()
}

func cycle[T comparable](values []T, cur T, dir int) T {
	for i, v := range values {
		if v == cur {
			return values[(i+dir+len(values))%len(values)]
		}
	}
	return values[0]
}

func (m Explorer) value(row int) string {
	f := m.cfg.Features
	switch row {
	case rowOS:
		return string(m.cfg.Target.OS)
	case rowWidth:
		return fmt.Sprintf("%d", m.cfg.Target.PointerWidth)
	case rowProfile:
		return string(m.cfg.Profile)
	case rowD3D:
		return onOff(f.D3D)
	case rowCUDA:
		return onOff(f.CUDA)
	case rowExt:
		return onOff(f.Ext)
	}
	return ""
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m Explorer) View() string {
	var b strings.Builder
	b.WriteString("\n  " + Title.Render("FLEXGEN") + "\n  " + Subtle.Render("linkage explorer") + "\n  " + Separator(28) + "\n\n")
	for i := 0; i < rowCount; i++ {
		name := fmt.Sprintf("%-8s", rowNames[i])
		if i == m.cursor {
			b.WriteString("  " + Title.Render("▸") + " " + Selected.Render(name) + " " + Value.Render(m.value(i)) + "\n")
		} else {
			b.WriteString("    " + Subtle.Render(name) + " " + Label.Render(m.value(i)) + "\n")
		}
	}
	b.WriteString("\n" + RenderPlan(m.cfg, m.plan, m.err) + "\n\n")
	b.WriteString("  " + Hints("j/k", "select", "h/l", "change", "q", "quit") + "\n")
	return b.String()
}

// RunExplorer blocks until the user quits.
func RunExplorer(cfg linkage.Config) error {
	_, err := tea.NewProgram(NewExplorer(cfg), tea.WithAltScreen()).Run()
	return err
}
