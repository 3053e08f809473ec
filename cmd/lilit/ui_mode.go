package main

import (
	"fmt"
	"os"
	"strings"
)

// autoSwitch - значение флагов --color и --ui.
type autoSwitch string

const (
	switchAuto autoSwitch = "auto"
	switchOn   autoSwitch = "on"
	switchOff  autoSwitch = "off"
)

func parseAutoSwitch(flag, value string) (autoSwitch, error) {
	v := autoSwitch(strings.ToLower(strings.TrimSpace(value)))
	switch v {
	case "":
		return switchAuto, nil
	case switchAuto, switchOn, switchOff:
		return v, nil
	}
	return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

// enabled resolves auto against the terminal f.
func (s autoSwitch) enabled(f *os.File) bool {
	switch s {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	return isTerminal(f)
}

// shouldUseTUI: прогресс рисуется в stderr.
func shouldUseTUI(mode autoSwitch) bool {
	return mode.enabled(os.Stderr)
}
