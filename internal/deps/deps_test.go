package deps

import (
	"path/filepath"
	"testing"

	"audiocat/internal/testsupport"
)

func TestCheck(t *testing.T) {
	present := testsupport.WriteStubBinary(t, t.TempDir(), "present", "")
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Off", Command: "clearly-not-present-binary", Disabled: true},
		{Name: "Blank", Command: "  "},
	}

	results := Check(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Resolved != present || results[0].State() != "ok" {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" || results[1].State() != "missing" {
		t.Fatalf("expected missing binary to be reported, got %#v", results[1])
	}
	if results[2].Available || results[2].State() != "disabled" {
		t.Fatalf("expected disabled requirement, got %#v", results[2])
	}
	if results[3].Detail != "command not configured" {
		t.Fatalf("expected unconfigured detail, got %q", results[3].Detail)
	}

	missing := Missing(results)
	if len(missing) != 2 || missing[0].Name != "Missing" || missing[1].Name != "Blank" {
		t.Fatalf("unexpected missing list %#v", missing)
	}
}

func TestRequirementsFollowConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	reqs := Requirements(cfg)
	if len(reqs) != 1 || reqs[0].Name != "ffprobe" || !reqs[0].Disabled {
		t.Fatalf("expected disabled ffprobe requirement, got %#v", reqs)
	}

	cfg = testsupport.NewConfig(t, testsupport.WithFFprobe("{}"))
	statuses := Check(Requirements(cfg))
	if !statuses[0].Available {
		t.Fatalf("expected stub ffprobe to resolve, got %#v", statuses[0])
	}
	if filepath.Base(statuses[0].Resolved) != "ffprobe" {
		t.Fatalf("expected resolved ffprobe path, got %q", statuses[0].Resolved)
	}
}
