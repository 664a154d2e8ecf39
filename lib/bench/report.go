package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	vm "github.com/VictoriaMetrics/metrics"
	gometrics "github.com/rcrowley/go-metrics"
)

// Report collects the results of a run
type Report struct {
	Config  Config
	Prewarm time.Duration
	Results []Result

	timers  gometrics.Registry
	metrics *vm.Set
}

func newReport(cfg Config) *Report {
	return &Report{
		Config:  cfg,
		timers:  gometrics.NewRegistry(),
		metrics: vm.NewSet(),
	}
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	registerTimer(r.timers, res)

	labels := fmt.Sprintf(`{serializer=%q,phase=%q}`, res.Serializer, res.Phase)
	summary := r.metrics.GetOrCreateSummary("dwire_round_duration_seconds" + labels)
	for _, d := range res.Durations {
		summary.Update(d.Seconds())
	}
	r.metrics.GetOrCreateCounter("dwire_serializations_total" + labels).Add(res.Loops * len(res.Durations))

	nsPerOp, bytesPerOp, allocsPerOp := res.NsPerOp(), float64(res.BytesPerOp), res.AllocsPerOp
	r.metrics.GetOrCreateGauge("dwire_op_duration_seconds"+labels, func() float64 { return nsPerOp / 1e9 })
	r.metrics.GetOrCreateGauge("dwire_op_bytes"+labels, func() float64 { return bytesPerOp })
	r.metrics.GetOrCreateGauge("dwire_op_allocs"+labels, func() float64 { return allocsPerOp })
}

// Result returns the result of the given serializer and phase
func (r *Report) Result(name string, phase Phase) (Result, bool) {
	for _, res := range r.Results {
		if res.Serializer == name && res.Phase == phase {
			return res, true
		}
	}
	return Result{}, false
}

// Timer returns the go-metrics timer holding the round durations of the given serializer and phase
func (r *Report) Timer(name string, phase Phase) gometrics.Timer {
	if t, ok := r.timers.Get(timerName(name, phase)).(gometrics.Timer); ok {
		return t
	}
	return nil
}

// Print writes a human readable summary of the report to w
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "prewarm: %s\n", r.Prewarm.Round(time.Millisecond))
	for _, res := range r.Results {
		printResult(w, res)
	}
}

func printResult(w io.Writer, res Result) {
	test := fmt.Sprintf("%s (%s)", res.Serializer, res.Phase)
	if res.NsPerOp() == 0 {
		fmt.Fprintf(w, "%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(res.NsPerOp(), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	fmt.Fprintf(w, "%-20s%.0f ms\t%.0fns/op (%s/op)\t%.0f ops/sec\t%d B/op\t%.1f allocs/op",
		test, res.Stats.Mean, nsPerOp, time.Duration(nsPerOp), opsPerSec, res.BytesPerOp, res.AllocsPerOp)
	if len(res.Durations) > 1 {
		fmt.Fprintf(w, "\t(min %.1f ms, max %.1f ms, σ %.2f ms)", res.Stats.Min, res.Stats.Max, res.Stats.StdDeviation)
	}
	fmt.Fprintln(w)
}

// WriteCSV writes one row per result to csvPath
func (r *Report) WriteCSV(csvPath string) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	// Write header
	header := []string{
		"Serializer", "Phase", "Loops", "Rounds",
		"MeanMs", "MinMs", "MaxMs", "StdDevMs", "MinMaxRatio", "P50Ms", "P99Ms",
		"NsPerOp", "DurationPerOp", "OpsPerSec", "BytesPerOp", "AllocsPerOp",
		"Prewarm", "Serializers",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, res := range r.Results {
		nsPerOp := math.Max(res.NsPerOp(), 1)
		opsPerSec := 1.0 / (nsPerOp / 1e9)

		var p50, p99 float64
		if t := r.Timer(res.Serializer, res.Phase); t != nil {
			ps := t.Percentiles([]float64{0.5, 0.99})
			p50, p99 = ps[0]/1e6, ps[1]/1e6
		}

		row := []string{
			res.Serializer,
			string(res.Phase),
			strconv.Itoa(res.Loops),
			strconv.Itoa(len(res.Durations)),
			fmt.Sprintf("%.3f", res.Stats.Mean),
			fmt.Sprintf("%.3f", res.Stats.Min),
			fmt.Sprintf("%.3f", res.Stats.Max),
			fmt.Sprintf("%.3f", res.Stats.StdDeviation),
			fmt.Sprintf("%.3f", res.Stats.MinMaxRatio),
			fmt.Sprintf("%.3f", p50),
			fmt.Sprintf("%.3f", p99),
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			strconv.Itoa(res.BytesPerOp),
			fmt.Sprintf("%.2f", res.AllocsPerOp),
			strconv.Itoa(r.Config.Prewarm),
			strings.Join(r.Config.Serializers, ";"),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV file: %w", err)
	}
	return nil
}

// WritePrometheus writes the results in Prometheus text exposition format
func (r *Report) WritePrometheus(w io.Writer) {
	r.metrics.WritePrometheus(w)
}
