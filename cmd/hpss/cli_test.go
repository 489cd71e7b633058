package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jcalabro/hpss"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateCommandProducesSets(t *testing.T) {
	out, err := runCLI(t, "generate", "--num-sets", "3", "--items-per-set", "10", "--threshold", "0.7", "--total-icons", "500")
	if err != nil {
		t.Fatalf("generate command failed: %v, output: %s", err, out)
	}
	var sets []hpss.OutputSet
	if err := json.Unmarshal([]byte(out), &sets); err != nil {
		t.Fatalf("decode output: %v, output: %s", err, out)
	}
	if len(sets) != 3 {
		t.Fatalf("len(sets) = %d, want 3", len(sets))
	}
}

func TestFeasibilityCommandReportsVerdict(t *testing.T) {
	out, err := runCLI(t, "feasibility", "--num-sets", "5", "--items-per-set", "10", "--threshold", "0.7", "--total-icons", "10000")
	if err != nil {
		t.Fatalf("feasibility command failed: %v, output: %s", err, out)
	}
	var verdict hpss.Verdict
	if err := json.Unmarshal([]byte(out), &verdict); err != nil {
		t.Fatalf("decode output: %v, output: %s", err, out)
	}
	if !verdict.Feasible {
		t.Fatalf("expected feasible verdict, got %+v", verdict)
	}
}

func TestVerifyCommandRoundTripsGeneratedBatch(t *testing.T) {
	generated, err := runCLI(t, "generate", "--num-sets", "4", "--items-per-set", "10", "--threshold", "0.7", "--total-icons", "500")
	if err != nil {
		t.Fatalf("generate command failed: %v", err)
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(bytes.NewReader([]byte(generated)))
	cmd.SetArgs([]string{"verify", "--threshold", "0.7"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("verify command failed: %v, output: %s", err, out.String())
	}
}
