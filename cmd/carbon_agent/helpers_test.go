package main

import (
	"bytes"
	"testing"

	"github.com/spf13/pflag"

	"github.com/terrago/carbon-advisor/internal/config"
)

// executeCommand runs the root command in-process and returns what it printed.
// Flag values persist on the package-level commands, so they are reset first.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	clearEnv(t)
	resetFlags()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags() {
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, cmd := range rootCmd.Commands() {
		reset(cmd.Flags())
	}
}

// clearEnv hides any provider keys or overrides from the developer's environment
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvProvider, config.EnvOpenAIKey, config.EnvOpenAIModel, config.EnvGeminiKey, config.EnvGeminiModel,
		config.EnvDatabaseURL, config.EnvLogLevel, config.EnvLogFormat, config.EnvPort, config.EnvConcurrency,
	} {
		t.Setenv(key, "")
	}
}
