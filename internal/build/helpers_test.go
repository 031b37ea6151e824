package build

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cruciblehq/cmbuild/internal/config"
	"github.com/cruciblehq/cmbuild/internal/runner"
	"github.com/cruciblehq/cmbuild/internal/toolchain"
	"github.com/stretchr/testify/require"
)

const testSDK = "/opt/emsdk"

// Records commands and simulates the build tool and the archiver.
type fakeRunner struct {
	cfg   *config.BuildConfiguration
	calls []runner.Command
	fail  func(runner.Command) int // Exit code for a command; nil always succeeds.
	quiet bool                     // When set, successful builds produce no artifacts.
	skip  map[string]bool          // Artifact names successful builds do not produce.
}

func (f *fakeRunner) Run(ctx context.Context, cmd runner.Command) (*runner.Result, error) {
	f.calls = append(f.calls, cmd)

	if f.fail != nil {
		if code := f.fail(cmd); code != 0 {
			return &runner.Result{ExitCode: code}, nil
		}
	}

	if !f.quiet {
		if err := f.produce(cmd); err != nil {
			return nil, err
		}
	}
	return &runner.Result{}, nil
}

// Writes the files a successful command would leave behind.
func (f *fakeRunner) produce(cmd runner.Command) error {
	switch {
	case isBuild(cmd, f.cfg.Native.BuildDir):
		dir := f.cfg.Native.Platform.ArtifactDir(f.cfg.Native.BuildDir, f.cfg.Variant)
		for _, name := range []string{f.cfg.Native.Platform.Library, f.cfg.Native.Platform.Symbols} {
			if f.skip[name] {
				continue
			}
			if err := writeFile(filepath.Join(dir, name), "native:"+name); err != nil {
				return err
			}
		}
	case isBuild(cmd, f.cfg.Wasm.BuildDir):
		for _, lib := range f.cfg.Wasm.Libraries {
			if f.skip[lib] {
				continue
			}
			if err := writeFile(filepath.Join(f.cfg.Wasm.BuildDir, lib), "wasm:"+lib); err != nil {
				return err
			}
		}
	case cmd.Stdin != "":
		return mergeFromScript(cmd.Stdin)
	}
	return nil
}

// Emulates "ar -M": concatenates the ADDLIB inputs into the CREATE output.
// The output directory is not created, mirroring the real archiver.
func mergeFromScript(script string) error {
	f, err := os.Open(script)
	if err != nil {
		return err
	}
	defer f.Close()

	var dest string
	var merged bytes.Buffer
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		directive, arg, _ := strings.Cut(sc.Text(), " ")
		switch directive {
		case "CREATE":
			dest = arg
		case "ADDLIB":
			data, err := os.ReadFile(arg)
			if err != nil {
				return err
			}
			merged.Write(data)
		}
	}
	if dest == "" {
		return fmt.Errorf("no CREATE directive in %s", script)
	}
	return os.WriteFile(dest, merged.Bytes(), 0644)
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// Whether cmd is a build (not configure) invocation for dir.
func isBuild(cmd runner.Command, dir string) bool {
	return len(cmd.Args) >= 2 && cmd.Args[0] == "--build" && cmd.Args[1] == dir
}

// Whether cmd configures dir.
func isConfigure(cmd runner.Command, dir string) bool {
	for i := 0; i+1 < len(cmd.Args); i++ {
		if cmd.Args[i] == "-B" && cmd.Args[i+1] == dir {
			return true
		}
	}
	return false
}

// Returns the calls touching dir or, for the archiver, using a script.
func (f *fakeRunner) callsFor(dir string) []runner.Command {
	var out []runner.Command
	for _, c := range f.calls {
		if isBuild(c, dir) || isConfigure(c, dir) || (c.Stdin != "" && strings.HasPrefix(c.Stdin, dir)) {
			out = append(out, c)
		}
	}
	return out
}

// Returns a Windows-layout configuration rooted in a temporary directory.
func testConfig(t *testing.T, variant config.Variant) *config.BuildConfiguration {
	t.Helper()

	platform, err := config.PlatformFor("win-x64")
	require.NoError(t, err)

	root := t.TempDir()
	return &config.BuildConfiguration{
		Source:  root,
		Output:  filepath.Join(root, "build", "OUT"),
		Variant: variant,
		Native: config.Native{
			BuildDir: filepath.Join(root, "build", "windows"),
			Platform: platform,
		},
		Wasm: config.Wasm{
			BuildDir:  filepath.Join(root, "build", "wasm"),
			Target:    "cmb",
			Generator: "Ninja",
			Emulator:  "node/16.20.0_64bit/bin/node",
			Libraries: []string{"libcmb.a", "shewchuk_predicates/libshewchuk_predicates.a"},
		},
	}
}

func noEnv(string) (string, bool) { return "", false }

func sdkEnv(key string) (string, bool) {
	if key == toolchain.EnvSDK {
		return testSDK, true
	}
	return "", false
}

// Returns a logger writing text records into buf.
func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Runs the orchestrator with a fake runner and returns both.
func run(t *testing.T, cfg *config.BuildConfiguration, lookup toolchain.LookupFunc, configure func(*fakeRunner)) (*Report, *fakeRunner, *bytes.Buffer) {
	t.Helper()

	fr := &fakeRunner{cfg: cfg}
	if configure != nil {
		configure(fr)
	}

	var logs bytes.Buffer
	report, err := Run(context.Background(), Options{
		Config: cfg,
		Runner: fr,
		Lookup: lookup,
		Logger: bufferLogger(&logs),
	})
	require.NoError(t, err)
	return report, fr, &logs
}
