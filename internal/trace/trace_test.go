package trace

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plannerkit/manifold/base"
)

func sampleTrajectory() *Trajectory {
	tr := New("pendulum", 0.1)
	tr.Record(0, &base.RealVectorState{Values: []float64{0.5, 0}}, []float64{1})
	tr.Record(0.1, &base.CompoundState{Components: []base.State{
		&base.RealVectorState{Values: []float64{0.4}},
		&base.RealVectorState{Values: []float64{-0.2}},
	}}, []float64{0.5})
	tr.RecordCell([]float64{1, 2})
	return tr
}

func TestRecordFlattens(t *testing.T) {
	tr := sampleTrajectory()
	if len(tr.States) != 2 {
		t.Fatalf("recorded %d states, want 2", len(tr.States))
	}
	if len(tr.States[1]) != 2 {
		t.Errorf("compound state flattened to %d values, want 2", len(tr.States[1]))
	}
}

func TestComponent(t *testing.T) {
	tr := sampleTrajectory()
	got := tr.Component(0)
	if len(got) != 2 || got[0] != 0.5 || got[1] != 0.4 {
		t.Errorf("Component(0) = %v", got)
	}
}

func TestWriteJSON(t *testing.T) {
	tr := sampleTrajectory()
	var sb strings.Builder
	if err := tr.WriteJSON(&sb); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	var back Trajectory
	if err := json.Unmarshal([]byte(sb.String()), &back); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	if back.Scenario != "pendulum" {
		t.Errorf("scenario = %q", back.Scenario)
	}
}

func TestExportJSON(t *testing.T) {
	tr := sampleTrajectory()
	path := filepath.Join(t.TempDir(), "run.json")
	if err := tr.ExportJSON(path); err != nil {
		t.Fatalf("export failed: %v", err)
	}
}
