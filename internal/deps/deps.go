// Package deps reports on the external programs audiocat can call.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"audiocat/internal/config"
)

// Requirement describes one external program.
type Requirement struct {
	Name     string
	Command  string
	Purpose  string
	Optional bool
	// Disabled marks a requirement switched off in configuration; it is
	// reported but never looked up.
	Disabled bool
}

// Status reports the availability of a requirement.
type Status struct {
	Requirement
	Available bool
	Resolved  string
	Detail    string
}

// State returns a short label for tables: ok, missing, or disabled.
func (s Status) State() string {
	switch {
	case s.Disabled:
		return "disabled"
	case s.Available:
		return "ok"
	default:
		return "missing"
	}
}

// Requirements lists the programs cfg asks for.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{{
		Name:     "ffprobe",
		Command:  cfg.Probe.FFprobeBinary,
		Purpose:  "duration, bitrate, sample rate, and channels for every container",
		Optional: true,
		Disabled: !cfg.Probe.Enabled,
	}}
}

// Check resolves each requirement on PATH.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		req.Command = strings.TrimSpace(req.Command)
		status := Status{Requirement: req}
		switch {
		case req.Disabled:
			status.Detail = "disabled in configuration"
		case req.Command == "":
			status.Detail = "command not configured"
		default:
			resolved, err := exec.LookPath(req.Command)
			if err != nil {
				status.Detail = fmt.Sprintf("binary %q not found", req.Command)
				break
			}
			status.Available = true
			status.Resolved = resolved
		}
		results = append(results, status)
	}
	return results
}

// Missing returns the enabled requirements that could not be resolved.
func Missing(statuses []Status) []Status {
	var out []Status
	for _, s := range statuses {
		if !s.Disabled && !s.Available {
			out = append(out, s)
		}
	}
	return out
}
