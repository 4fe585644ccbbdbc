package main

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/blockduel/ai"
	"github.com/plus3/blockduel/game"
)

type Report struct {
	// Configuration
	Mode       string
	Games      int
	Workers    int
	Seed       uint64
	Tick       time.Duration
	Limit      time.Duration
	HumanScale float64
	Realtime   bool

	// Results
	Results    []GameResult
	Wins       [2]int
	Unfinished int
	AvgGame    time.Duration
	Scores     [2]int
	Lines      [2]int
	Garbage    [2]int
	Actions    [2][]ActionCount
	CacheRate  [2]float64
	Clears     []ClearCount
	Systems    []SystemRow
	TickTime   Stats
	WallTime   time.Duration
	FinalSkill string
}

type ActionCount struct {
	Action ai.Action
	Count  int
}

type ClearCount struct {
	Name  string
	Count int
}

type SystemRow struct {
	Name  string
	Runs  int64
	Avg   time.Duration
	Max   time.Duration
	Total time.Duration
}

// Stats aggregates durations without keeping the samples.
type Stats struct {
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Count int64
	total time.Duration
}

func (s *Stats) Add(d time.Duration) {
	if s.Count == 0 || d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
	s.total += d
	s.Count++
}

func (s *Stats) Merge(o Stats) {
	if o.Count == 0 {
		return
	}
	if s.Count == 0 || o.Min < s.Min {
		s.Min = o.Min
	}
	s.Max = max(s.Max, o.Max)
	s.total += o.total
	s.Count += o.Count
}

func (s *Stats) Finalize() {
	if s.Count == 0 {
		return
	}
	s.Avg = s.total / time.Duration(s.Count)
}

// Summarize folds the per-game results into the report totals.
func (r *Report) Summarize() {
	var simTotal time.Duration
	actions := [2]map[ai.Action]int{{}, {}}
	hits, lookups := [2]int{}, [2]int{}
	clears := map[string]int{}
	systems := map[string]*SystemRow{}
	var order []string

	for _, res := range r.Results {
		if res.Finished {
			r.Wins[res.Outcome.Winner]++
		} else {
			r.Unfinished++
		}
		simTotal += res.SimTime
		for _, p := range game.Players {
			r.Scores[p] += res.Outcome.Scores[p]
			r.Lines[p] += res.Outcome.Lines[p]
			r.Garbage[p] += res.Garbage[p]
			for a, n := range res.Actions[p] {
				actions[p][a] += n
			}
			hits[p] += res.Hits[p]
			lookups[p] += res.Hits[p] + res.Misses[p]
		}
		for name, n := range res.Clears {
			clears[name] += n
		}
		r.TickTime.Merge(res.TickTime)

		if res.Scheduler == nil {
			continue
		}
		for _, sys := range res.Scheduler.Systems {
			row, ok := systems[sys.Name]
			if !ok {
				row = &SystemRow{Name: sys.Name}
				systems[sys.Name] = row
				order = append(order, sys.Name)
			}
			row.Runs += sys.Runs
			row.Total += sys.Total
			row.Max = max(row.Max, sys.Max)
		}
	}
	r.TickTime.Finalize()

	if len(r.Results) > 0 {
		r.AvgGame = simTotal / time.Duration(len(r.Results))
	}
	for _, p := range game.Players {
		r.Actions[p] = nil
		for a := ai.ActionNone; a <= ai.ActionForceLock; a++ {
			if n := actions[p][a]; n > 0 {
				r.Actions[p] = append(r.Actions[p], ActionCount{Action: a, Count: n})
			}
		}
		if lookups[p] > 0 {
			r.CacheRate[p] = float64(hits[p]) / float64(lookups[p])
		}
	}

	r.Clears = r.Clears[:0]
	for _, name := range slices.Sorted(maps.Keys(clears)) {
		r.Clears = append(r.Clears, ClearCount{Name: name, Count: clears[name]})
	}
	slices.SortStableFunc(r.Clears, func(a, b ClearCount) int { return cmp.Compare(b.Count, a.Count) })

	r.Systems = r.Systems[:0]
	for _, name := range order {
		row := systems[name]
		if row.Runs > 0 {
			row.Avg = row.Total / time.Duration(row.Runs)
		}
		r.Systems = append(r.Systems, *row)
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Duel Simulation Report

## Run Configuration
- **Mode:** {{.Mode}}
- **Games:** {{.Games}} ({{.Workers}} workers)
- **Base Seed:** {{.Seed}}
- **Tick:** {{.Tick}}
- **Per-Game Limit:** {{.Limit}} {{if .Realtime}}wall clock{{else}}simulated{{end}}
- **ARIA Weight Scale:** {{printf "%.2f" .HumanScale}}

## Outcomes
- **ARIA Wins:** {{index .Wins 0}}
- **AI Wins:** {{index .Wins 1}}
- **Unfinished:** {{.Unfinished}}
- **Average Game Length:** {{.AvgGame}} simulated
- **Wall Time:** {{.WallTime}}
{{- if .FinalSkill}}
- **Final Opponent Skill:** {{.FinalSkill}}
{{- end}}

| Side | Score | Lines | Garbage Sent | Cache Hit Rate |
|------|-------|-------|--------------|----------------|
| ARIA | {{index .Scores 0}} | {{index .Lines 0}} | {{index .Garbage 0}} | {{pct (index .CacheRate 0)}} |
| AI | {{index .Scores 1}} | {{index .Lines 1}} | {{index .Garbage 1}} | {{pct (index .CacheRate 1)}} |

## Clears
{{- range .Clears}}
- {{.Name}}: {{.Count}}
{{- else}}
- none
{{- end}}

## Planner Actions
{{- range $i, $side := .Actions}}
- **{{side $i}}:**{{range $side}} {{.Action}}={{.Count}}{{end}}
{{- end}}

## Tick Time
- **Avg:** {{.TickTime.Avg}}
- **Min:** {{.TickTime.Min}}
- **Max:** {{.TickTime.Max}}
- **Ticks:** {{.TickTime.Count}}

## Systems
| System | Runs | Avg | Max | Total |
|--------|------|-----|-----|-------|
{{- range .Systems}}
| {{.Name}} | {{.Runs}} | {{.Avg}} | {{.Max}} | {{.Total}} |
{{- end}}

## Games
| Seed | Winner | Score (ARIA-AI) | Lines (ARIA-AI) | Length |
|------|--------|-----------------|-----------------|--------|
{{- range .Results}}
| {{.Seed}} | {{if .Finished}}{{.Outcome.Winner}}{{else}}-{{end}} | {{index .Outcome.Scores 0}}-{{index .Outcome.Scores 1}} | {{index .Outcome.Lines 0}}-{{index .Outcome.Lines 1}} | {{.SimTime}} |
{{- end}}
`

	fm := template.FuncMap{
		"pct": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v*100)
		},
		"side": func(i int) string {
			return game.Player(i).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
