package main

import (
	"io"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/plus3/planets/ecs"
)

type Report struct {
	// Configuration
	Bodies     int
	Ticks      int
	TimeScale  float64
	Resolution string
	Plot       bool

	// Results
	TotalTime     time.Duration
	TickTime      Stats
	Drawables     int
	Storage       *ecs.StorageStats
	Pipelines     []PipelineReport
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type PipelineReport struct {
	Name  string
	Stats *ecs.SchedulerStats
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
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Graph plots tick durations in microseconds. Long runs are averaged down to at most
// width points.
func (s *Stats) Graph(width int) string {
	if len(s.Samples) == 0 {
		return ""
	}

	bucket := max(1, (len(s.Samples)+width-1)/width)
	data := make([]float64, 0, width)
	for i := 0; i < len(s.Samples); i += bucket {
		end := min(i+bucket, len(s.Samples))
		var sum time.Duration
		for _, sample := range s.Samples[i:end] {
			sum += sample
		}
		data = append(data, float64(sum/time.Duration(end-i))/float64(time.Microsecond))
	}

	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(width),
		asciigraph.Caption("tick duration (µs)"),
	)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Simulation Bench Report

## Configuration
- **Bodies:** {{.Bodies}}
- **Ticks:** {{.Ticks}}
- **Time Scale:** x{{.TimeScale}}
- **Viewport:** {{.Resolution}}

## Performance Results
- **Total Time:** {{.TotalTime}}
- **Tick Time (update + render):**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}
- **Drawables in last frame:** {{.Drawables}}
{{if .Plot}}
{{"` + "```" + `"}}
{{.TickTime.Graph 80}}
{{"` + "```" + `"}}
{{end}}
## Storage
- **Entities:** {{.Storage.TotalEntityCount}}
- **Archetypes:** {{.Storage.ArchetypeCount}}
{{range .Storage.ArchetypeBreakdown}}  - 0x{{printf "%08X" .ID}}: {{.EntityCount}} entities ({{join .ComponentTypes}})
{{end}}
## Systems
{{range .Pipelines}}### {{.Name}}
| System | Avg | Min | Max |
|---|---|---|---|
{{range .Stats.Systems}}| {{.Name}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{end}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"join": func(names []string) string {
			return strings.Join(names, ", ")
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
