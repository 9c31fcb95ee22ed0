package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"dropbench/internal/app"
	"dropbench/internal/core"
	"dropbench/internal/pool"
	"dropbench/internal/render"
	"dropbench/internal/sims/rain"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type options struct {
	ticks     int
	logEvery  int
	paced     bool
	tps       int
	out       string
	pngEvery  int
	gifFrames int
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	opts := options{}
	flag.IntVar(&opts.ticks, "ticks", 600, "number of ticks to run")
	flag.IntVar(&opts.logEvery, "log-every", 60, "log the timer label every N ticks (0 disables)")
	flag.BoolVar(&opts.paced, "paced", false, "hold ticks to -tps instead of running flat out")
	flag.StringVar(&opts.out, "out", "", "directory for PNG snapshots and the GIF (empty disables output)")
	flag.IntVar(&opts.pngEvery, "png-every", 0, "write a mosaic PNG every N ticks (0 writes only the final one)")
	flag.IntVar(&opts.gifFrames, "gif", 0, "record the first N ticks of grid 0 as a GIF")
	var overrides kvList
	flag.Var(&overrides, "set", "grid override in key=value form: w, h, dampening, seed (repeatable)")
	flag.Parse()

	applyOverrides(cfg, overrides)
	opts.tps = cfg.TPS

	driver, err := cfg.Open()
	if err != nil {
		log.Fatal(err)
	}
	defer driver.Close()

	log.Printf("running %d ticks: %d grids of %dx%d, strategy %s, accel %s",
		opts.ticks, cfg.Grids, cfg.Width, cfg.Height, cfg.Strategy, cfg.Accel)
	stats, err := run(driver, opts)
	if err != nil {
		driver.Close()
		log.Fatal(err)
	}
	fmt.Printf("%s: %d ticks, mean/min/max %s\n", driver.Strategy(), stats.Count, stats)
}

// applyOverrides merges key=value pairs over the current grid settings.
// Pairs without "=" are skipped; unparsable values fall back to the grid
// defaults.
func applyOverrides(cfg *app.Config, overrides []string) {
	if len(overrides) == 0 {
		return
	}
	m := map[string]string{
		"w":         strconv.Itoa(cfg.Width),
		"h":         strconv.Itoa(cfg.Height),
		"dampening": strconv.FormatFloat(cfg.Dampening, 'g', -1, 64),
		"seed":      strconv.FormatInt(cfg.Seed, 10),
	}
	for _, kv := range overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		m[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	parsed := rain.FromMap(m)
	cfg.Width = parsed.Width
	cfg.Height = parsed.Height
	cfg.Dampening = float64(parsed.Dampening)
	cfg.Seed = parsed.Seed
}

// run ticks the driver and writes the requested images. Each tick completes
// before its output is read.
func run(d *pool.Driver, o options) (core.TimerStats, error) {
	var stats core.TimerStats
	var step *core.FixedStep
	if o.paced {
		step = core.NewFixedStep(o.tps)
	}
	var rec *render.GIFRecorder
	if o.gifFrames > 0 {
		rec = render.NewGIFRecorder(render.DefaultGIFDelay)
	}
	p := d.Pool()
	layout := render.NewLayout(p.Len(), p.Size(), 1)

	for i := 1; i <= o.ticks; i++ {
		if step != nil {
			step.Wait()
		}
		d.Tick()
		stats.Add(d.Elapsed())
		if o.logEvery > 0 && i%o.logEvery == 0 {
			log.Printf("tick %d: %s", i, d.Label())
		}
		if rec != nil && rec.Len() < o.gifFrames {
			d.Render(func(index int, pixels []byte) {
				if index == 0 {
					rec.Add(p.Size(), pixels)
				}
			})
		}
		if o.out != "" && o.pngEvery > 0 && i%o.pngEvery == 0 {
			if err := writeMosaic(d, layout, filepath.Join(o.out, fmt.Sprintf("tick-%06d.png", i))); err != nil {
				return stats, err
			}
		}
	}

	if o.out == "" {
		return stats, nil
	}
	if err := writeMosaic(d, layout, filepath.Join(o.out, "final.png")); err != nil {
		return stats, err
	}
	if rec != nil {
		if err := rec.Save(filepath.Join(o.out, "grid0.gif")); err != nil {
			return stats, fmt.Errorf("saving gif: %w", err)
		}
	}
	return stats, nil
}

func writeMosaic(d *pool.Driver, layout render.Layout, path string) error {
	img := render.NewMosaic(layout)
	d.Render(func(index int, pixels []byte) {
		render.Compose(img, layout, index, pixels)
	})
	if err := render.WritePNG(path, img); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
