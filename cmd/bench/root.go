package bench

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/dWire/cmd/util"
	"github.com/ValentinKolb/dWire/lib/bench"
	"github.com/ValentinKolb/dWire/rpc/common"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
)

var log = logger.GetLogger("cli")

// BenchCmd runs the serializer benchmark
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compare the serializers on the sample packet",
	Long: `Compare the serializers on the sample packet.

For every serializer the packet is first serialized on a fresh serializer
and writer (first phase), then again after the writer was reset (second
phase). Every run starts with a cpu prewarm loop and a round trip check.

All flags can also be set as environment variables with the DWIRE_ prefix,
e.g. DWIRE_LOOPS=1000.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return util.BindCommandFlags(cmd)
	},
	RunE: runBench,
}

func init() {
	cobra.OnInitialize(util.InitConfig)
	util.SetupBenchFlags(BenchCmd)
}

func runBench(cmd *cobra.Command, _ []string) error {
	config := util.GetBenchConfig()
	log.Debugf("configuration:%s", config)

	report, err := bench.Run(cmd.Context(), config.ToBenchConfig())
	if err != nil {
		return err
	}

	report.Print(cmd.OutOrStdout())

	if config.CSVPath != "" {
		if err := report.WriteCSV(config.CSVPath); err != nil {
			return err
		}
		log.Infof("results written to %s", config.CSVPath)
	}

	if config.MetricsPath != "" {
		if err := writeMetrics(report, config); err != nil {
			return err
		}
		log.Infof("metrics written to %s", config.MetricsPath)
	}

	return nil
}

func writeMetrics(report *bench.Report, config *common.BenchConfig) error {
	file, err := os.Create(config.MetricsPath)
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	report.WritePrometheus(file)
	return file.Close()
}
