// Package util contains helpers shared by the dWire commands (internal use)
package util

import (
	"github.com/ValentinKolb/dWire/rpc/common"
	"github.com/ValentinKolb/dWire/rpc/serializer"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"strings"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupBenchFlags adds the benchmark flags to a command
func SetupBenchFlags(cmd *cobra.Command) {
	key := "loops"
	cmd.Flags().Int(key, 100000, WrapString("Number of serializations per round"))

	key = "prewarm"
	cmd.Flags().Int(key, 10000000, WrapString("Iterations of the cpu prewarm loop that runs before the first measurement"))

	key = "rounds"
	cmd.Flags().Int(key, 1, WrapString("How many times the second (warm) phase is repeated for each serializer"))

	key = "serializers"
	cmd.Flags().String(key, strings.Join(serializer.Names(), ","), WrapString("Comma-separated list of serializers to benchmark"))

	key = "csv"
	cmd.Flags().String(key, "", WrapString("Write the results to this CSV file"))

	key = "metrics"
	cmd.Flags().String(key, "", WrapString("Write the results in Prometheus text format to this file"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("dwire")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds the flags of a command to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// GetBenchConfig reads the benchmark configuration from viper
func GetBenchConfig() *common.BenchConfig {
	return &common.BenchConfig{
		LogLevel:    viper.GetString("log-level"),
		Loops:       viper.GetInt("loops"),
		Prewarm:     viper.GetInt("prewarm"),
		Rounds:      viper.GetInt("rounds"),
		Serializers: strings.Split(viper.GetString("serializers"), ","),
		CSVPath:     viper.GetString("csv"),
		MetricsPath: viper.GetString("metrics"),
	}
}

// GetSerializer creates the serializer named by the serializer flag
func GetSerializer() (serializer.ISerializer, error) {
	return serializer.ByName(viper.GetString("serializer"))
}
