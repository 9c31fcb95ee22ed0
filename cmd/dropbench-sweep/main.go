package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"dropbench/internal/app"
	"dropbench/internal/core"
	"dropbench/internal/dispatch"
)

type scenario struct {
	strategy string
	grids    int
	workers  int
}

func (s scenario) String() string {
	return fmt.Sprintf("%s grids=%d workers=%d", s.strategy, s.grids, s.workers)
}

type scenarioResult struct {
	scenario scenario
	stats    core.TimerStats
	err      error
}

func main() {
	strategies := flag.String("strategies", strings.Join(dispatch.Names(), ","), "comma-separated dispatch strategies")
	gridCounts := flag.String("grids", "1,4,16,64", "comma-separated grid counts")
	workerCounts := flag.String("workers", "0", "comma-separated worker counts (0 = GOMAXPROCS)")
	ticks := flag.Int("ticks", 120, "measured ticks per scenario")
	warmup := flag.Int("warmup", 10, "unmeasured ticks before measuring")
	width := flag.Int("width", 256, "grid width")
	height := flag.Int("height", 256, "grid height")
	seed := flag.Int64("seed", 42, "master seed")
	accel := flag.String("accel", "cpu", "diffusion kernel: cpu or opencl")
	parallel := flag.Int("parallel", 1, "scenarios measured concurrently; values above 1 skew timings")
	flag.Parse()

	grids, err := parseInts(*gridCounts)
	if err != nil {
		log.Fatalf("-grids: %v", err)
	}
	workers, err := parseInts(*workerCounts)
	if err != nil {
		log.Fatalf("-workers: %v", err)
	}
	sets := scenarios(splitList(*strategies), grids, workers)

	base := app.NewConfig()
	base.Width, base.Height, base.Seed, base.Accel = *width, *height, *seed, *accel

	fmt.Printf("Sweeping %d scenarios (%d ticks, %d warmup, %dx%d grids)\n", len(sets), *ticks, *warmup, *width, *height)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < max(*parallel, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				results <- runScenario(*base, s, *warmup, *ticks)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, s := range sets {
			jobs <- s
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		if res.err != nil {
			log.Printf("%s: %v", res.scenario, res.err)
			continue
		}
		all = append(all, res)
	}
	sortResults(all)

	fmt.Printf("\nResults by mean tick time (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for i, res := range all {
		fmt.Printf("%2d) %-8s grids=%-4d workers=%-3d %s\n",
			i+1, res.scenario.strategy, res.scenario.grids, res.scenario.workers, res.stats)
	}
}

// scenarios expands the cartesian product of the inputs. Worker counts only
// vary for strategies that keep a worker pool.
func scenarios(strategies []string, grids, workers []int) []scenario {
	var sets []scenario
	for _, name := range strategies {
		for _, g := range grids {
			if name == "inline" || name == "tasks" {
				sets = append(sets, scenario{strategy: name, grids: g})
				continue
			}
			for _, w := range workers {
				sets = append(sets, scenario{strategy: name, grids: g, workers: w})
			}
		}
	}
	return sets
}

func runScenario(base app.Config, s scenario, warmup, ticks int) scenarioResult {
	cfg := base
	cfg.Strategy = s.strategy
	cfg.Grids = s.grids
	cfg.Workers = s.workers
	cfg.Enabled = true

	res := scenarioResult{scenario: s}
	d, err := cfg.Open()
	if err != nil {
		res.err = err
		return res
	}
	defer d.Close()

	for i := 0; i < warmup; i++ {
		d.Tick()
	}
	for i := 0; i < ticks; i++ {
		d.Tick()
		res.stats.Add(d.Elapsed())
	}
	return res
}

func sortResults(all []scenarioResult) {
	sort.Slice(all, func(i, j int) bool {
		if all[i].stats.Mean() != all[j].stats.Mean() {
			return all[i].stats.Mean() < all[j].stats.Mean()
		}
		return all[i].scenario.String() < all[j].scenario.String()
	})
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range splitList(s) {
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}
