package ui

import (
	"math"
	"strconv"

	"dropbench/internal/core"
)

const defaultFloatStep = 0.05

// stepFloat returns the value one step away from current in direction,
// clamped to the control bounds. ok is false when the value cannot move.
func stepFloat(ctrl core.ParameterControl, current float64, direction int) (target float64, ok bool) {
	if direction == 0 {
		return current, false
	}
	step := ctrl.Step
	if step <= 0 {
		step = defaultFloatStep
	}
	target = current + float64(direction)*step
	if ctrl.HasMin && target < ctrl.Min {
		target = ctrl.Min
	}
	if ctrl.HasMax && target > ctrl.Max {
		target = ctrl.Max
	}
	if math.Abs(target-current) < 1e-9 {
		return current, false
	}
	return target, true
}

// formatFloat picks a precision from the control step.
func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = defaultFloatStep
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// controlValue is the parsed state of one control.
type controlValue struct {
	text       string
	floatValue float64
	boolValue  bool
	ok         bool
}

// readControl parses the snapshot value backing ctrl.
func readControl(snap core.ParameterSnapshot, ctrl core.ParameterControl) controlValue {
	param, found := snap.Lookup(ctrl.Key)
	if !found {
		return controlValue{text: "--"}
	}
	switch ctrl.Type {
	case core.ParamTypeFloat:
		v, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			return controlValue{text: "--"}
		}
		return controlValue{text: formatFloat(ctrl, v), floatValue: v, ok: true}
	case core.ParamTypeBool:
		v, err := strconv.ParseBool(param.Value)
		if err != nil {
			return controlValue{text: "--"}
		}
		text := "off"
		if v {
			text = "on"
		}
		return controlValue{text: text, boolValue: v, ok: true}
	default:
		return controlValue{text: "--"}
	}
}

// infoLines lists every snapshot parameter that is not a control as
// "Label: value", grouped in snapshot order.
func infoLines(snap core.ParameterSnapshot, controls []core.ParameterControl) []string {
	skip := make(map[string]bool, len(controls))
	for _, c := range controls {
		skip[c.Key] = true
	}
	var lines []string
	for _, group := range snap.Groups {
		for _, p := range group.Params {
			if skip[p.Key] {
				continue
			}
			lines = append(lines, p.Label+": "+p.Value)
		}
	}
	return lines
}
