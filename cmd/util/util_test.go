package util

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func TestWrapString(t *testing.T) {
	text := strings.Repeat("word ", 30)
	for _, line := range strings.Split(WrapString(text), "\n") {
		if len(line) > Wrap {
			t.Errorf("Line longer than %d: %q", Wrap, line)
		}
	}
	if WrapString("") != "" {
		t.Errorf("Expected empty string")
	}
}

func TestGetBenchConfig(t *testing.T) {
	defer viper.Reset()

	cmd := &cobra.Command{Use: "test"}
	SetupBenchFlags(cmd)
	if err := cmd.ParseFlags([]string{"--loops", "42", "--serializers", "net,binary"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}
	if err := BindCommandFlags(cmd); err != nil {
		t.Fatalf("Failed to bind flags: %v", err)
	}

	c := GetBenchConfig()
	if c.Loops != 42 || c.Rounds != 1 || c.Prewarm != 10000000 {
		t.Errorf("Unexpected config: %+v", c)
	}
	if strings.Join(c.Serializers, ",") != "net,binary" {
		t.Errorf("Unexpected serializers: %q", c.Serializers)
	}
}

func TestGetBenchConfigFromEnv(t *testing.T) {
	defer viper.Reset()
	t.Setenv("DWIRE_ROUNDS", "7")
	InitConfig()

	cmd := &cobra.Command{Use: "test"}
	SetupBenchFlags(cmd)
	if err := BindCommandFlags(cmd); err != nil {
		t.Fatalf("Failed to bind flags: %v", err)
	}

	if c := GetBenchConfig(); c.Rounds != 7 {
		t.Errorf("Expected rounds from env, got %d", c.Rounds)
	}
}

func TestGetSerializer(t *testing.T) {
	defer viper.Reset()

	viper.Set("serializer", "net")
	if _, err := GetSerializer(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	viper.Set("serializer", "yaml")
	if _, err := GetSerializer(); err == nil {
		t.Errorf("Expected error for unknown serializer")
	}
}
