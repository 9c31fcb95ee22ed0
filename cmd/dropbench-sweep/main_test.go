package main

import (
	"slices"
	"testing"
	"time"

	"dropbench/internal/app"
	"dropbench/internal/core"
)

func TestParseInts(t *testing.T) {
	got, err := parseInts(" 1, 4,,16 ")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{1, 4, 16}) {
		t.Fatalf("unexpected values %v", got)
	}
	if _, err := parseInts("1,x"); err == nil {
		t.Fatal("expected an error for a non-numeric entry")
	}
}

func TestScenariosSkipWorkersForUnpooledStrategies(t *testing.T) {
	sets := scenarios([]string{"tasks", "jobs"}, []int{1, 8}, []int{2, 4})
	if len(sets) != 2+4 {
		t.Fatalf("expected 6 scenarios, got %d: %v", len(sets), sets)
	}
	if sets[0] != (scenario{strategy: "tasks", grids: 1}) {
		t.Fatalf("unexpected first scenario %v", sets[0])
	}
	if sets[5] != (scenario{strategy: "jobs", grids: 8, workers: 4}) {
		t.Fatalf("unexpected last scenario %v", sets[5])
	}
}

func TestRunScenario(t *testing.T) {
	base := app.NewConfig()
	base.Width, base.Height = 16, 16
	res := runScenario(*base, scenario{strategy: "native", grids: 5, workers: 2}, 2, 7)
	if res.err != nil {
		t.Fatal(res.err)
	}
	if res.stats.Count != 7 {
		t.Fatalf("expected 7 readings, got %d", res.stats.Count)
	}

	bad := runScenario(*base, scenario{strategy: "fibers", grids: 1}, 0, 1)
	if bad.err == nil {
		t.Fatal("expected an error for an unknown strategy")
	}
}

func TestSortResultsByMean(t *testing.T) {
	mk := func(name string, d time.Duration) scenarioResult {
		var s core.TimerStats
		s.Add(d)
		return scenarioResult{scenario: scenario{strategy: name}, stats: s}
	}
	all := []scenarioResult{mk("slow", 3*time.Millisecond), mk("fast", time.Millisecond), mk("mid", 2*time.Millisecond)}
	sortResults(all)
	if all[0].scenario.strategy != "fast" || all[2].scenario.strategy != "slow" {
		t.Fatalf("unexpected order %v", all)
	}
}
