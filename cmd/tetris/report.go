package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/kamstrup/intmap"
	"github.com/plus3/tetris/loop"
	"github.com/plus3/tetris/tetris"
)

// Tally counts placed pieces by kind and locks by lines cleared.
type Tally struct {
	pieces *intmap.Map[tetris.Kind, int]
	clears *intmap.Map[int, int]
}

func NewTally() *Tally {
	return &Tally{
		pieces: intmap.New[tetris.Kind, int](len(tetris.Kinds)),
		clears: intmap.New[int, int](5),
	}
}

func (t *Tally) Piece(kind tetris.Kind) {
	n, _ := t.pieces.Get(kind)
	t.pieces.Put(kind, n+1)
}

func (t *Tally) Clear(lines int) {
	n, _ := t.clears.Get(lines)
	t.clears.Put(lines, n+1)
}

// Observe runs action against g and records the piece it locked, if any.
// A tick or a drop locks at most one piece.
func (t *Tally) Observe(g *tetris.Game, action func()) {
	kind := g.Piece().Kind
	pieces, lines := g.Stats().Pieces, g.Lines()

	action()

	if g.Stats().Pieces > pieces {
		t.Piece(kind)
		t.Clear(g.Lines() - lines)
	}
}

type KindCount struct {
	Kind  tetris.Kind
	Count int
}

// Pieces lists every kind in catalog order, including unseen ones.
func (t *Tally) Pieces() []KindCount {
	out := make([]KindCount, 0, len(tetris.Kinds))
	for _, kind := range tetris.Kinds {
		n, _ := t.pieces.Get(kind)
		out = append(out, KindCount{Kind: kind, Count: n})
	}
	return out
}

// Clears returns the number of locks that removed 0 through 4 lines.
func (t *Tally) Clears() [5]int {
	var out [5]int
	for lines := range out {
		out[lines], _ = t.clears.Get(lines)
	}
	return out
}

func (t *Tally) Total() int {
	total := 0
	for _, kc := range t.Pieces() {
		total += kc.Count
	}
	return total
}

type Report struct {
	// Configuration
	Seed      uint64
	Lockdown  tetris.LockdownMode
	DropEvery int
	MaxPieces int

	// Results
	Final         tetris.State
	Tally         *Tally
	Scheduler     *loop.SchedulerStats
	TotalTime     time.Duration
	UpdateTime    Stats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Tetris Simulation Report

## Configuration
- **Seed:** {{if .Seed}}{{.Seed}}{{else}}random{{end}}
- **Lockdown:** {{.Lockdown}}
- **Drop Every:** {{.DropEvery}} ticks
- **Piece Limit:** {{if .MaxPieces}}{{.MaxPieces}}{{else}}none{{end}}

## Game
- **Score:** {{.Final.Score}}
- **Lines:** {{.Final.Lines}}
- **Level:** {{.Final.Level}}
- **Game Over:** {{.Final.GameOver}}
- **Ticks:** {{.Final.Stats.Ticks}}
- **Pieces:** {{.Final.Stats.Pieces}}
- **Wall Kicks:** {{.Final.Stats.Kicks}}

## Line Clears
{{range $lines, $n := .Tally.Clears}}- {{$lines}} lines: {{$n}}
{{end}}
## Pieces Placed ({{.Tally.Total}})
{{range .Tally.Pieces}}- {{.Kind}}: {{.Count}}
{{end}}
## Performance
- **Total Time:** {{.TotalTime}}
- **Frames:** {{.Scheduler.Frames}}
- **Frame Time:**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{range .Scheduler.Stages}}- **{{.Name}}:** avg {{.AvgDuration}}, max {{.MaxDuration}} over {{.ExecutionCount}} runs
{{end}}
## Memory Usage
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end)
- Total Alloc: {{mb .MemStatsStart.TotalAlloc}} MB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MB (end)
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
