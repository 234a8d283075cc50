package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/Ilingu/corrodis/game"
	"github.com/Ilingu/corrodis/sim"
	"github.com/Ilingu/corrodis/tetris"
)

// GameResult is the outcome of one headless game.
type GameResult struct {
	Seed      uint64
	State     game.State
	Landed    int
	Cleared   int
	Simulated time.Duration
	Stats     *sim.SchedulerStats
}

type Report struct {
	// Configuration
	Duration    time.Duration
	Games       int
	Seed        uint64
	Every       int
	Board       tetris.Bounds
	FramePeriod time.Duration

	// Results
	Results        []GameResult
	Frames         int64
	Overruns       int64
	Landed         int
	Cleared        int
	Simulated      time.Duration
	TotalTime      time.Duration
	Systems        []SystemTotals
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// SystemTotals aggregates one system's timings over every game.
type SystemTotals struct {
	Name       string
	Executions int64
	Min        time.Duration
	Max        time.Duration
	Total      time.Duration
}

func (s SystemTotals) Avg() time.Duration {
	if s.Executions == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Executions)
}

// Add folds a finished game into the report.
func (r *Report) Add(result GameResult) {
	r.Results = append(r.Results, result)
	r.Landed += result.Landed
	r.Cleared += result.Cleared
	r.Simulated += result.Simulated
	r.Frames += result.Stats.Frames
	r.Overruns += result.Stats.Overruns

	for i, sys := range result.Stats.Systems {
		if i == len(r.Systems) {
			r.Systems = append(r.Systems, SystemTotals{Name: sys.Name, Min: sys.MinDuration})
		}
		totals := &r.Systems[i]
		totals.Executions += sys.ExecutionCount
		totals.Total += sys.TotalDuration
		if sys.ExecutionCount > 0 && sys.MinDuration < totals.Min {
			totals.Min = sys.MinDuration
		}
		if sys.MaxDuration > totals.Max {
			totals.Max = sys.MaxDuration
		}
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Corrodis Soak Report

## Configuration
- **Wall Time Budget:** {{.Duration}}
- **Games Requested:** {{.Games}}
- **First Seed:** {{.Seed}}
- **Key Every:** {{.Every}} frames
- **Board:** {{.Board.Width}}x{{.Board.Height}}
- **Frame Period:** {{.FramePeriod}}

## Games
{{range .Results}}- seed {{.Seed}}: {{.State}} after {{.Stats.Frames}} frames ({{.Simulated | round}} simulated), {{.Landed}} landed, {{.Cleared}} rows cleared
{{end}}
## Totals
- **Games Played:** {{len .Results}}
- **Frames:** {{.Frames}} ({{.Overruns}} overruns)
- **Pieces Landed:** {{.Landed}}
- **Rows Cleared:** {{.Cleared}}
- **Simulated Time:** {{.Simulated | round}}
- **Wall Time:** {{.TotalTime | round}}

## Systems
{{range .Systems}}- **{{.Name}}:** {{.Executions}} runs, avg {{.Avg}}, min {{.Min}}, max {{.Max}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"round": func(d time.Duration) string {
			return d.Round(time.Millisecond).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parsing report template: %w", err)
	}
	return tmpl.Execute(w, r)
}
