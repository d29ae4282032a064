package toolchain

import (
	"fmt"
	"strings"

	"github.com/daedaleanai/runsyn/util"
)

// Target is a synthesis target supported by a tool.
type Target struct {
	Name string
	// Part is the vendor device designator.
	Part string
	// FmaxMarker starts the maximum frequency section of the timing report (Quartus only).
	FmaxMarker string
}

// UnsupportedTargetError is returned for target names a tool does not know.
type UnsupportedTargetError struct {
	Tool string
	Name string
}

func (e *UnsupportedTargetError) Error() string {
	return fmt.Sprintf("target %s not supported by %s", e.Name, e.Tool)
}

// TargetTable maps case-insensitive target names to targets.
type TargetTable struct {
	Tool    string
	targets util.OrderedMap[string, Target]
}

func newTargetTable(tool string, targets ...Target) *TargetTable {
	table := &TargetTable{Tool: tool, targets: util.NewOrderedMap[string, Target]()}
	for _, target := range targets {
		if err := table.targets.Insert(strings.ToLower(target.Name), target); err != nil {
			panic(err)
		}
	}
	return table
}

// QuartusTargets returns the targets known to the Quartus flow.
func QuartusTargets() *TargetTable {
	return newTargetTable(QuartusTool,
		Target{Name: "StratixV", Part: "5SGXEA3K1F35C1", FmaxMarker: "; Slow 900mV 85C Model Fmax Summary"},
	)
}

// VivadoTargets returns the targets known to the Vivado flow.
func VivadoTargets() *TargetTable {
	return newTargetTable(VivadoTool,
		Target{Name: "Kintex7", Part: "xc7k70tfbv484-3"},
		Target{Name: "Zynq7000", Part: "xc7z020clg484-1"},
	)
}

// WithParts returns a copy of the table where `parts` (target name to part) add targets or
// replace the part of existing ones.
func (t *TargetTable) WithParts(parts map[string]string) *TargetTable {
	result := &TargetTable{Tool: t.Tool, targets: util.NewOrderedMap[string, Target]()}
	result.targets.AllowOverrides()
	for _, entry := range t.targets.Entries() {
		result.targets.Insert(entry.Key, entry.Value)
	}
	for name, part := range parts {
		key := strings.ToLower(name)
		target, ok := result.targets.Lookup(key)
		if !ok {
			target = Target{Name: name}
		}
		target.Part = part
		result.targets.Insert(key, target)
	}
	return result
}

// Lookup finds a target by name, ignoring case.
func (t *TargetTable) Lookup(name string) (Target, error) {
	target, ok := t.targets.Lookup(strings.ToLower(name))
	if !ok {
		return Target{}, &UnsupportedTargetError{Tool: t.Tool, Name: name}
	}
	return target, nil
}

// Targets lists all targets ordered by name.
func (t *TargetTable) Targets() []Target {
	return t.targets.Values()
}
