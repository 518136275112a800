package harness

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot renders a result's trace as canonical JSON. Sample values are
// embedded as JSON, not as strings.
func Snapshot(name string, result *Result) ([]byte, error) {
	frames := make([]any, len(result.Trace))
	for i, ft := range result.Trace {
		samples := make([]any, len(ft.Samples))
		for j, s := range ft.Samples {
			samples[j] = map[string]any{
				"subject": s.Subject,
				"field":   s.Field,
				"value":   json.RawMessage(s.Value),
			}
		}
		frames[i] = map[string]any{
			"seq":      ft.Seq,
			"track":    ft.Track,
			"time":     ft.Time,
			"complete": ft.Complete,
			"samples":  samples,
		}
	}

	return MarshalCanonical(map[string]any{
		"scenario_name": name,
		"frames":        frames,
	})
}

// RunWithGolden runs a scenario and compares its trace snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...Option) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario, opts...)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	snapshot, err := Snapshot(name, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, snapshot)
	return nil
}
