// Package bench drives randomized benchmark runs over map files and
// aggregates per-run measurements.
package bench

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"gridnav/pkg/gridnav"
)

// RunData captures one measured search.
type RunData struct {
	// ManhattanDistance is the obstacle-free lower bound between the
	// endpoints.
	ManhattanDistance int
	// PathLength is the search result, gridnav.NoPath on failure.
	PathLength int
	// NodesAllocated counts the search nodes the run created.
	NodesAllocated int
	// Duration is the wall time of the search call.
	Duration time.Duration
}

// Analysis accumulates RunData for one map and evaluates it into a
// summary bucketed by Manhattan distance, so detour cost and node churn
// can be read as functions of crow-flight distance.
type Analysis struct {
	mapName string
	data    []RunData
}

// NewAnalysis returns an empty accumulator for the named map.
func NewAnalysis(mapName string) *Analysis {
	return &Analysis{mapName: mapName}
}

// MapName returns the map this analysis belongs to.
func (a *Analysis) MapName() string { return a.mapName }

// Add records one run.
func (a *Analysis) Add(d RunData) {
	a.data = append(a.data, d)
}

// Len returns the number of recorded runs.
func (a *Analysis) Len() int { return len(a.data) }

// SummaryRow is the aggregate of all runs sharing one Manhattan distance.
type SummaryRow struct {
	ManhattanDistance int
	Runs              int
	NoPath            int
	MeanPathLength    float64
	MeanNodes         float64
	MeanDuration      time.Duration
}

// bucket accumulates the raw sums for one Manhattan distance.
type bucket struct {
	runs     int
	noPath   int
	length   int
	found    int
	nodes    int
	duration time.Duration
}

// Evaluate buckets the recorded runs by Manhattan distance and averages
// each bucket. Failed searches count toward NoPath and are excluded from
// the path-length mean. Rows come back sorted by distance.
func (a *Analysis) Evaluate() []SummaryRow {
	buckets := make(map[int]*bucket)
	for _, d := range a.data {
		b := buckets[d.ManhattanDistance]
		if b == nil {
			b = &bucket{}
			buckets[d.ManhattanDistance] = b
		}
		b.runs++
		if d.PathLength == gridnav.NoPath {
			b.noPath++
		} else {
			b.length += d.PathLength
			b.found++
		}
		b.nodes += d.NodesAllocated
		b.duration += d.Duration
	}

	rows := make([]SummaryRow, 0, len(buckets))
	for dist, b := range buckets {
		row := SummaryRow{
			ManhattanDistance: dist,
			Runs:              b.runs,
			NoPath:            b.noPath,
			MeanNodes:         float64(b.nodes) / float64(b.runs),
			MeanDuration:      b.duration / time.Duration(b.runs),
		}
		if b.found > 0 {
			row.MeanPathLength = float64(b.length) / float64(b.found)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].ManhattanDistance < rows[j].ManhattanDistance
	})
	return rows
}

// WriteTable renders the evaluated summary as an aligned text table.
func (a *Analysis) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "# %s, %d runs\n", a.mapName, len(a.data))
	fmt.Fprintln(tw, "manhattan\truns\tno_path\tmean_length\tmean_nodes\tmean_wall")
	for _, row := range a.Evaluate() {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%.1f\t%.1f\t%s\n",
			row.ManhattanDistance, row.Runs, row.NoPath,
			row.MeanPathLength, row.MeanNodes, row.MeanDuration)
	}
	return tw.Flush()
}
