package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestPlainOutput(t *testing.T) {
	u := NewPlain(&bytes.Buffer{})

	tests := []struct {
		got  string
		want string
	}{
		{u.Header("mockbank"), "=== mockbank ==="},
		{u.Success("saved"), "[OK] saved"},
		{u.Error("boom"), "[FAILED] boom"},
		{u.Warning("careful"), "[WARN] careful"},
		{u.Muted("quiet"), "quiet"},
		{u.KeyValue("Workers", "8"), "Workers:       8"},
		{u.TableRow("audit", "2 violations", StatusError), "  audit:          FAILED: 2 violations"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestSummaryBoxPlain(t *testing.T) {
	u := NewPlain(&bytes.Buffer{})
	out := u.SummaryBox("Ledger", []KV{
		{Key: "Accounts", Value: "9"},
		{Key: "Status", Value: "clean"},
	})

	for _, want := range []string{"=== Ledger ===", "Accounts:", "9", "Status:", "clean"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestTablePlain(t *testing.T) {
	u := NewPlain(&bytes.Buffer{})
	out := u.Table([]string{"NAME", "KIND"}, [][]string{
		{"get_account_info", "read"},
		{"process_deposit", "write"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}
	if lines[0] != "NAME              KIND" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[2] != "process_deposit   write" {
		t.Errorf("row = %q", lines[2])
	}
}

func TestStyledOutputDiffersFromPlain(t *testing.T) {
	styled := &UI{Out: &bytes.Buffer{}, IsTTY: true, Width: 80}
	if !styled.shouldStyle() {
		t.Fatal("tty without NO_COLOR should style")
	}
	styled.SetNoColor(true)
	if styled.shouldStyle() {
		t.Error("SetNoColor(true) should disable styling")
	}
	styled.SetNoColor(false)
	if styled.shouldStyle() {
		t.Error("SetNoColor(false) must not re-enable styling")
	}
}

func TestProgressBarPlain(t *testing.T) {
	var buf bytes.Buffer
	u := NewPlain(&buf)
	bar := u.NewProgressBar("Operations", 10)

	bar.Update(4)
	bar.Update(2) // stale values are ignored
	if got := bar.Current(); got != 4 {
		t.Errorf("Current() = %d, want 4", got)
	}
	if buf.Len() != 0 {
		t.Errorf("plain progress should only print on completion, got %q", buf.String())
	}

	bar.Update(10)
	bar.Complete()
	if got := buf.String(); got != "Operations: 10/10 done\n" {
		t.Errorf("Complete() wrote %q", got)
	}

	buf.Reset()
	bar.Fail(errors.New("audit failed"))
	if got := buf.String(); got != "Operations: FAILED: audit failed\n" {
		t.Errorf("Fail() wrote %q", got)
	}
}

func TestSpinnerPlain(t *testing.T) {
	var buf bytes.Buffer
	u := NewPlain(&buf)

	s := u.NewSpinner("Saving snapshot")
	s.Success("ignored before start")
	if buf.Len() != 0 {
		t.Fatalf("unstarted spinner wrote %q", buf.String())
	}

	s.Start()
	s.Success("done")
	s.Error("only the first finish prints")
	if got := buf.String(); got != "Saving snapshot... done\n" {
		t.Errorf("spinner wrote %q", got)
	}
}
