package common

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/dWire/lib/bench"
)

// --------------------------------------------------------------------------
// Benchmark configuration struct
// --------------------------------------------------------------------------

// BenchConfig is the configuration of the bench command, as read from flags and environment
type BenchConfig struct {
	LogLevel    string
	Loops       int
	Prewarm     int
	Rounds      int
	Serializers []string
	CSVPath     string
	MetricsPath string
}

// ToBenchConfig converts the BenchConfig to the configuration of the benchmark driver
func (c *BenchConfig) ToBenchConfig() bench.Config {
	serializers := make([]string, 0, len(c.Serializers))
	for _, s := range c.Serializers {
		if s = strings.TrimSpace(s); s != "" {
			serializers = append(serializers, s)
		}
	}

	return bench.Config{
		Loops:       c.Loops,
		Prewarm:     c.Prewarm,
		Rounds:      c.Rounds,
		Serializers: serializers,
	}
}

// String returns a formatted string representation of the benchmark configuration
func (c *BenchConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Benchmark")
	addField("Loops", fmt.Sprintf("%d", c.Loops))
	addField("Rounds", fmt.Sprintf("%d", c.Rounds))
	addField("Prewarm Iterations", fmt.Sprintf("%d", c.Prewarm))
	addField("Serializers", strings.Join(c.Serializers, ", "))

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	addSection("Output")
	addField("CSV File", orNone(c.CSVPath))
	addField("Metrics File", orNone(c.MetricsPath))

	return sb.String()
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
