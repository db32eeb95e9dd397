// Package trace records propagated trajectories and exports them for
// inspection. The JSON layout is a debugging aid, not a stable format.
package trace

import (
	"encoding/json"
	"io"
	"os"

	"github.com/plannerkit/manifold/base"
)

// Trajectory is a propagated sequence of flattened states with the controls
// that produced them.
type Trajectory struct {
	Scenario  string      `json:"scenario"`
	Duration  float64     `json:"control_duration"`
	Times     []float64   `json:"times"`
	States    [][]float64 `json:"states"`
	Controls  [][]float64 `json:"controls"`
	CellCoord [][]float64 `json:"cells,omitempty"`
}

func New(scenario string, duration float64) *Trajectory {
	return &Trajectory{Scenario: scenario, Duration: duration}
}

// Record appends a propagation step. The state is flattened so compound
// states export the same way as atomic ones.
func (tr *Trajectory) Record(t float64, s base.State, ctrl []float64) {
	tr.Times = append(tr.Times, t)
	tr.States = append(tr.States, base.FlattenState(s))
	tr.Controls = append(tr.Controls, ctrl)
}

// RecordCell appends the projected cell coordinate for the latest state.
func (tr *Trajectory) RecordCell(coord []float64) {
	tr.CellCoord = append(tr.CellCoord, coord)
}

// Component returns the i-th state coordinate over time, for plotting.
func (tr *Trajectory) Component(i int) []float64 {
	out := make([]float64, 0, len(tr.States))
	for _, s := range tr.States {
		if i < len(s) {
			out = append(out, s[i])
		}
	}
	return out
}

func (tr *Trajectory) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tr)
}

func (tr *Trajectory) ExportJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return tr.WriteJSON(f)
}
