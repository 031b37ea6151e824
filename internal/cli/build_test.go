package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/cruciblehq/cmbuild/internal/build"
	"github.com/cruciblehq/cmbuild/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCmdConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmbuild.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variant: Release\nwasm:\n  sdk: /opt/from-file\n"), 0644))

	prev := RootCmd.Config
	RootCmd.Config = path
	t.Cleanup(func() { RootCmd.Config = prev })

	tests := []struct {
		name    string
		cmd     BuildCmd
		variant config.Variant
		sdk     string
		stage   bool
	}{
		{name: "file only", variant: config.VariantRelease, sdk: "/opt/from-file"},
		{name: "sdk flag overrides", cmd: BuildCmd{EmscriptenSDK: "/opt/flag"}, variant: config.VariantRelease, sdk: "/opt/flag"},
		{name: "variant flag overrides", cmd: BuildCmd{Variant: "minsizerel"}, variant: config.VariantMinSizeRel, sdk: "/opt/from-file"},
		{name: "stage flag", cmd: BuildCmd{StageWasmArchive: true}, variant: config.VariantRelease, sdk: "/opt/from-file", stage: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := tt.cmd.configuration()
			require.NoError(t, err)
			assert.Equal(t, tt.variant, cfg.Variant)
			assert.Equal(t, tt.sdk, cfg.Wasm.SDK)
			assert.Equal(t, tt.stage, cfg.Wasm.StageArchive)
		})
	}
}

func TestBuildCmdConfigurationMissingExplicitFile(t *testing.T) {
	prev := RootCmd.Config
	RootCmd.Config = filepath.Join(t.TempDir(), "missing.yaml")
	t.Cleanup(func() { RootCmd.Config = prev })

	_, err := (&BuildCmd{}).configuration()
	assert.ErrorIs(t, err, config.ErrConfigFile)
}

func TestBuildCmdOverridesNoWasm(t *testing.T) {
	o := (&BuildCmd{NoWasm: true, MetricsFile: "m.prom"}).overrides()
	assert.True(t, o.DisableWasm)
	assert.Equal(t, "m.prom", o.MetricsFile)
	assert.Nil(t, o.StageArchive)
}

func TestExitError(t *testing.T) {
	var err error = &ExitError{Code: 3}

	var exit *ExitError
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, 3, exit.ExitCode())
	assert.Contains(t, err.Error(), "3")

	cause := errors.New("unknown flag --x")
	err = &ExitError{Code: build.ExitUsage, Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause.Error(), err.Error())
}

func TestExitCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, build.ExitOK},
		{"build report", &ExitError{Code: build.ExitWasmFailed}, build.ExitWasmFailed},
		{"wrapped", fmt.Errorf("run: %w", &ExitError{Code: build.ExitBothFailed}), build.ExitBothFailed},
		{"configuration", config.ErrInvalidConfig, build.ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeOf(tt.err))
		})
	}
}

func TestExecuteUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"build", "--no-such-flag"}},
		{"unknown global flag", []string{"--no-such-flag"}},
		{"unexpected argument", []string{"build", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(context.Background(), tt.args, kong.Writers(io.Discard, io.Discard))
			require.Error(t, err)

			var exit *ExitError
			require.True(t, errors.As(err, &exit))
			assert.Equal(t, build.ExitUsage, ExitCodeOf(err))
		})
	}
}
