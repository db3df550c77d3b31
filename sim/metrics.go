// Accumulates per-run outcome counters (finished/dropped, per-core
// breakdowns) and renders them as a run's two output artifacts: a raw
// per-request latency dump and a single-row percentile summary CSV.

package sim

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// percentilePoints is the fixed percentile row of the summary CSV: min,
// p25, median, p75, two tail points, and max.
var percentilePoints = []float64{0, 25, 50, 75, 99.9, 99.99, 100}

// Metrics aggregates the outcome of every request processed during a run.
type Metrics struct {
	NrTotalCores int
	RTTBase      int64

	Received int
	Finished []*Request
	Dropped  []*Request

	FinishedPerCore []int
	DroppedPerCore  []int

	// ForwarderDroppedNoWorker counts layout 1 requests the forwarder
	// finished but could not hand off because no worker was idle.
	ForwarderDroppedNoWorker int
}

// NewMetrics returns an empty Metrics sized for nrTotalCores cores.
func NewMetrics(nrTotalCores int, rttBase int64) *Metrics {
	return &Metrics{
		NrTotalCores:    nrTotalCores,
		RTTBase:         rttBase,
		FinishedPerCore: make([]int, nrTotalCores),
		DroppedPerCore:  make([]int, nrTotalCores),
	}
}

// RecordIngressDrop counts a request dropped at admission to a core's local
// queue (queue full on arrival).
func (m *Metrics) RecordIngressDrop(req *Request, coreID int) {
	req.IsDropped = true
	m.Dropped = append(m.Dropped, req)
	m.DroppedPerCore[coreID]++
}

// Absorb folds one tick's ScheduleResult into the running totals.
func (m *Metrics) Absorb(res *ScheduleResult) {
	m.Finished = append(m.Finished, res.Finished...)
	m.Dropped = append(m.Dropped, res.Dropped...)
	for coreID, n := range res.FinishedPerCore {
		m.FinishedPerCore[coreID] += n
	}
	for coreID, n := range res.DroppedPerCore {
		m.DroppedPerCore[coreID] += n
	}
	m.ForwarderDroppedNoWorker += res.ForwarderDroppedNoWorker
}

// latencies returns each finished request's tick latency (departure minus
// arrival, RTT excluded), sorted ascending.
func (m *Metrics) latencies() []float64 {
	vals := make([]float64, len(m.Finished))
	for i, req := range m.Finished {
		vals[i] = float64(req.Latency())
	}
	sort.Float64s(vals)
	return vals
}

// WriteRawLatencies writes one latency-plus-RTT value per line, a .dat dump
// used for offline distribution plotting.
func (m *Metrics) WriteRawLatencies(path string) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		logrus.Fatalf("error creating raw latency file %s: %v", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logrus.Fatalf("error closing raw latency file %s: %v", path, cerr)
		}
	}()

	for _, req := range m.Finished {
		if _, werr := fmt.Fprintf(file, "%d\n", req.Latency()+m.RTTBase); werr != nil {
			logrus.Fatalf("error writing raw latency to %s: %v", path, werr)
		}
	}
}

// WriteStatsCSV writes the single-row percentile summary: total requests,
// received, completed, dropped, the fixed percentile set, then a
// finished/dropped pair per core.
func (m *Metrics) WriteStatsCSV(path string, nrPackets int) {
	file, err := os.Create(path)
	if err != nil {
		logrus.Fatalf("error creating stats file %s: %v", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	lat := m.latencies()
	row := []string{
		strconv.Itoa(nrPackets),
		strconv.Itoa(m.Received),
		strconv.Itoa(len(m.Finished)),
		strconv.Itoa(len(m.Dropped)),
	}
	for _, p := range percentilePoints {
		row = append(row, strconv.FormatFloat(quantile(lat, p), 'f', -1, 64))
	}
	for i := 0; i < m.NrTotalCores; i++ {
		row = append(row, strconv.Itoa(m.FinishedPerCore[i]), strconv.Itoa(m.DroppedPerCore[i]))
	}

	if err := w.Write(row); err != nil {
		logrus.Fatalf("error writing stats row to %s: %v", path, err)
	}
}

// quantile wraps gonum's empirical quantile estimator, accepting p on a
// 0-100 percentile scale rather than gonum's 0-1 fraction.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(p/100.0, stat.Empirical, sorted, nil)
}
