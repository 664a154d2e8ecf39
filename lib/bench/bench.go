package bench

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"runtime"
	"time"

	"github.com/ValentinKolb/dWire/lib/sample"
	"github.com/ValentinKolb/dWire/lib/wire"
	"github.com/ValentinKolb/dWire/rpc/serializer"
	"github.com/cockroachdb/errors"
	"github.com/lni/dragonboat/v4/logger"
	gometrics "github.com/rcrowley/go-metrics"
)

var Logger = logger.GetLogger("bench")

// ErrVerification is returned when a serializer does not reproduce the fixture
var ErrVerification = errors.New("bench: round trip mismatch")

// Phase names a timed pass over a serializer
type Phase string

const (
	// PhaseFirst runs on a fresh serializer and writer, so plan building and buffer growth are included
	PhaseFirst Phase = "first"
	// PhaseSecond runs after Reset on the same serializer and writer
	PhaseSecond Phase = "second"
)

// Config controls a benchmark run
type Config struct {
	Loops       int      // serializations per round
	Prewarm     int      // iterations of the cpu prewarm loop
	Rounds      int      // repetitions of the second phase
	Serializers []string // names accepted by serializer.ByName, in run order
}

// DefaultConfig returns the configuration used when no flags are given
func DefaultConfig() Config {
	return Config{
		Loops:       100000,
		Prewarm:     10000000,
		Rounds:      1,
		Serializers: serializer.Names(),
	}
}

func (c Config) validate() error {
	if c.Loops < 1 {
		return errors.Newf("loops must be positive, got %d", c.Loops)
	}
	if c.Rounds < 1 {
		return errors.Newf("rounds must be positive, got %d", c.Rounds)
	}
	if c.Prewarm < 0 {
		return errors.Newf("prewarm must not be negative, got %d", c.Prewarm)
	}
	if len(c.Serializers) == 0 {
		return errors.New("no serializers selected")
	}
	return nil
}

// Result holds the measurements of one phase of one serializer
type Result struct {
	Serializer  string
	Phase       Phase
	Loops       int
	Durations   []time.Duration // one entry per round
	Stats       Stats           // over Durations, in milliseconds
	BytesPerOp  int
	AllocsPerOp float64
}

// NsPerOp returns the mean duration of a single serialization
func (r Result) NsPerOp() float64 {
	if r.Loops == 0 || len(r.Durations) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range r.Durations {
		total += d
	}
	return float64(total) / float64(len(r.Durations)*r.Loops)
}

// Run prewarms the cpu and times every configured serializer
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// resolve all names before spending time on the prewarm
	for _, name := range cfg.Serializers {
		if _, err := serializer.ByName(name); err != nil {
			return nil, err
		}
	}

	report := newReport(cfg)
	pkt := sample.New()

	Logger.Infof("prewarming cpu (%d iterations)", cfg.Prewarm)
	report.Prewarm = prewarm(cfg.Prewarm)

	for _, name := range cfg.Serializers {
		if err := verify(name, pkt); err != nil {
			return nil, err
		}

		// a new instance, so the first phase starts without cached plans
		s, _ := serializer.ByName(name)
		w := wire.NewWriter()

		first, err := runPhase(ctx, s, w, pkt, cfg.Loops, 1)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: first phase", name)
		}
		first.Serializer, first.Phase = name, PhaseFirst
		report.add(first)

		second, err := runPhase(ctx, s, w, pkt, cfg.Loops, cfg.Rounds)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: second phase", name)
		}
		second.Serializer, second.Phase = name, PhaseSecond
		report.add(second)

		Logger.Infof("%s: first %.0f ms, second %.0f ms (mean of %d rounds)",
			name, first.Stats.Mean, second.Stats.Mean, cfg.Rounds)
	}

	return report, nil
}

// runPhase resets w and serializes pkt loops times, rounds times over
func runPhase(ctx context.Context, s serializer.ISerializer, w *wire.Writer, pkt *sample.Packet, loops, rounds int) (Result, error) {
	res := Result{Loops: loops, Durations: make([]time.Duration, 0, rounds)}
	var mallocs uint64
	var ms runtime.MemStats

	for round := 0; round < rounds; round++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		w.Reset()
		runtime.ReadMemStats(&ms)
		before := ms.Mallocs
		start := time.Now()

		for i := 0; i < loops; i++ {
			if err := s.Serialize(w, pkt); err != nil {
				return res, err
			}
		}

		res.Durations = append(res.Durations, time.Since(start))
		runtime.ReadMemStats(&ms)
		mallocs += ms.Mallocs - before
		res.BytesPerOp = w.Length() / loops
	}

	res.Stats = NewStats(res.Durations)
	res.AllocsPerOp = float64(mallocs) / float64(loops*rounds)
	return res, nil
}

// verify serializes the fixture once and checks it decodes to the same packet
func verify(name string, pkt *sample.Packet) error {
	s, err := serializer.ByName(name)
	if err != nil {
		return err
	}

	w := wire.NewWriter()
	if err := s.Serialize(w, pkt); err != nil {
		return errors.Wrapf(err, "%s: serialize", name)
	}

	var out sample.Packet
	r := wire.NewReader(w.Bytes())
	if err := s.Deserialize(r, &out); err != nil {
		return errors.Wrapf(err, "%s: deserialize", name)
	}
	if !reflect.DeepEqual(pkt, &out) {
		return errors.Wrapf(ErrVerification, "%s:\nwant:\n%s\ngot:\n%s", name, pkt, &out)
	}
	if !r.EndOfData() {
		return errors.Wrapf(ErrVerification, "%s: %d trailing bytes", name, r.AvailableBytes())
	}

	Logger.Debugf("%s: verified %d byte encoding", name, w.Length())
	return nil
}

// prewarm keeps the cpu busy so frequency scaling settles before timing starts
func prewarm(iterations int) time.Duration {
	start := time.Now()
	var sum float64
	for i := 0; i < iterations; i++ {
		sum += math.Sin(float64(i))
	}
	sink = sum
	return time.Since(start)
}

var sink float64

// timerName is the go-metrics registry key of a phase
func timerName(name string, phase Phase) string {
	return fmt.Sprintf("%s.%s", name, phase)
}

// registerTimer records the per round durations of res in registry
func registerTimer(registry gometrics.Registry, res Result) gometrics.Timer {
	timer := gometrics.GetOrRegisterTimer(timerName(res.Serializer, res.Phase), registry)
	for _, d := range res.Durations {
		timer.Update(d)
	}
	return timer
}
