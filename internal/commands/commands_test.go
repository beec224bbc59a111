package commands_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/spha/internal/commands"
	"github.com/idelchi/spha/internal/config"
)

const referenceKey = "8c9cb8dc37ffd5760da8d280f17443935d791d0fb6f1246ec0b4a381b6e739c4"

var referenceFlags = []string{"--point", "1,2,3", "--axis", "0,1,0", "--iterations", "10", "--strength", "0.1"}

// execute runs the CLI with args. The root command binds flags into the
// global viper instance, so tests in this package run sequentially and reset
// it before every execution.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	root := commands.NewRootCommand(&config.Config{}, "test")

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func TestDerive(t *testing.T) {
	out, err := execute(t, append([]string{"derive", "-q"}, referenceFlags...)...)
	if err != nil {
		t.Fatalf("derive error = %v", err)
	}

	if got := strings.TrimSpace(out); got != referenceKey {
		t.Errorf("derive = %q, want %q", got, referenceKey)
	}
}

func TestDeriveFromParamsFile(t *testing.T) {
	out, err := execute(t, "derive", "-q", "--params", filepath.Join("testdata", "reference.jsonc"))
	if err != nil {
		t.Fatalf("derive error = %v", err)
	}

	if got := strings.TrimSpace(out); got != referenceKey {
		t.Errorf("derive = %q, want %q", got, referenceKey)
	}
}

func TestDeriveFromEnvironment(t *testing.T) {
	t.Setenv("SPHA_POINT", "1,2,3")
	t.Setenv("SPHA_AXIS", "0,1,0")
	t.Setenv("SPHA_ITERATIONS", "10")
	t.Setenv("SPHA_STRENGTH", "0.1")
	t.Setenv("SPHA_QUIET", "true")

	out, err := execute(t, "derive")
	if err != nil {
		t.Fatalf("derive error = %v", err)
	}

	if got := strings.TrimSpace(out); got != referenceKey {
		t.Errorf("derive = %q, want %q", got, referenceKey)
	}
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "missing point",
			args: []string{"derive", "--axis", "0,1,0"},
			want: "--point is a required field",
		},
		{
			name: "params and point",
			args: []string{"derive", "--params", "p.yml", "--point", "1,2,3"},
			want: "--params is mutually exclusive with --point",
		},
		{
			name: "params and iterations",
			args: []string{"derive", "--params", "p.yml", "--iterations", "5"},
			want: "--params is mutually exclusive with --iterations",
		},
		{
			name: "params and strength",
			args: []string{"derive", "--params", "p.yml", "--strength", "0.5"},
			want: "--params is mutually exclusive with --strength",
		},
		{
			name: "short vector",
			args: []string{"derive", "--point", "1,2", "--axis", "0,1,0"},
			want: "--point must be three comma-separated numbers",
		},
		{
			name: "bad strength",
			args: append([]string{"derive"}, append(referenceFlags, "--strength", "strong")...),
			want: "--strength must be a number",
		},
		{
			name: "bad expect",
			args: append([]string{"derive", "--expect", "abc"}, referenceFlags...),
			want: "--expect",
		},
		{
			name: "unknown suite",
			args: append([]string{"seal", "--suite", "rot13", "file"}, referenceFlags...),
			want: "--suite",
		},
		{
			name: "no workers",
			args: append([]string{"seal", "-j", "0", "file"}, referenceFlags...),
			want: "--parallel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
					_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatalf("execute(%v) succeeded, want error containing %q", tt.args, tt.want)
			}

			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("execute(%v) error = %q, want it to contain %q", tt.args, err, tt.want)
			}
		})
	}
}

func TestSealOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")

	if err := os.WriteFile(path, []byte("Hello, World!"), 0o600); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	if _, err := execute(t, append([]string{"seal", "-q", "--delete", "--suite", "aes-256-gcm", path}, referenceFlags...)...); err != nil {
		t.Fatalf("seal error = %v", err)
	}

	if _, err := os.Stat(path + ".sealed"); err != nil {
		t.Fatalf("sealed file missing: %v", err)
	}

	if _, err := execute(t, append([]string{"open", "-q", "--open-ext", ".out", dir}, referenceFlags...)...); err != nil {
		t.Fatalf("open error = %v", err)
	}

	got, err := os.ReadFile(path + ".out")
	if err != nil {
		t.Fatalf("reading opened file: %v", err)
	}

	if string(got) != "Hello, World!" {
		t.Errorf("opened = %q, want %q", got, "Hello, World!")
	}
}

func TestShow(t *testing.T) {
	out, err := execute(t, append([]string{"derive", "--show"}, referenceFlags...)...)
	if !errors.Is(err, cobraext.ErrExitGracefully) {
		t.Fatalf("derive --show error = %v, want %v", err, cobraext.ErrExitGracefully)
	}

	if strings.Contains(out, referenceKey) {
		t.Error("derive --show derived a key instead of only showing the configuration")
	}
}
