package report

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/goflex/internal/cgoemit"
	"github.com/san-kum/goflex/internal/linkage"
)

type PlanData struct {
	OS           string           `json:"os"`
	Arch         string           `json:"arch"`
	PointerWidth int              `json:"pointer_width,omitempty"`
	Profile      string           `json:"profile"`
	Features     linkage.Features `json:"features"`
	SearchPath   string           `json:"search_path,omitempty"`
	Libraries    []string         `json:"libraries"`
	LDFlags      []string         `json:"ldflags,omitempty"`
	Error        string           `json:"error,omitempty"`
}

func NewPlanData(cfg linkage.Config, plan *linkage.Plan, err error) PlanData {
	data := PlanData{
		OS:           string(cfg.Target.OS),
		Arch:         cfg.Target.GOARCH(),
		PointerWidth: cfg.Target.PointerWidth,
		Profile:      string(cfg.Profile),
		Features:     cfg.Features,
		Libraries:    []string{},
	}
	if err != nil {
		data.Error = err.Error()
		return data
	}
	data.SearchPath = plan.SearchPath
	data.Libraries = append(data.Libraries, plan.Libraries...)
	data.LDFlags = cgoemit.LDFlags(plan)
	return data
}

func ExportJSON(path string, plan *linkage.Plan) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return Encode(file, NewPlanData(plan.Config, plan, nil))
}

func ExportMatrix(w io.Writer, entries []linkage.Entry) error {
	rows := make([]PlanData, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, NewPlanData(e.Config, e.Plan, e.Err))
	}
	return Encode(w, rows)
}

func Encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
