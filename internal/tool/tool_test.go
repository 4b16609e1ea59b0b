package tool

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"
)

const histogramOutput = `# ImageMagick pixel enumeration: 4,4,255,srgb
      4: (255,0,0) #FF0000 srgb(255,0,0)
     12: (0,0,255) #0000FF srgb(0,0,255)
`

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Magick = "magick"
	return cfg
}

// TestExtractorArgs tests the ImageMagick command line.
func TestExtractorArgs(t *testing.T) {
	e := NewExtractor(testConfig())

	got := e.Args("photo.jpg", 8)
	want := []string{"photo.jpg", "-resize", "1200x1200>", "-colors", "8", "-format", "%c", "histogram:info:-"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Args() = %v, want %v", got, want)
	}

	if got := e.Args("-odd.png", 8)[0]; got != "./-odd.png" {
		t.Errorf("expected dash-prefixed path to be escaped, got %q", got)
	}
}

// TestExtractorCustomMaxDimension tests the resize geometry follows the config.
func TestExtractorCustomMaxDimension(t *testing.T) {
	cfg := testConfig()
	cfg.MaxDimension = 300
	e := NewExtractor(cfg)

	if got := e.Args("a.png", 4)[2]; got != "300x300>" {
		t.Errorf("geometry = %q, want 300x300>", got)
	}

	cfg.MaxDimension = 0
	if got := NewExtractor(cfg).Args("a.png", 4)[2]; got != "1200x1200>" {
		t.Errorf("geometry = %q, want default 1200x1200>", got)
	}
}

// TestExtractSuccess tests parsing and ranking of tool output.
func TestExtractSuccess(t *testing.T) {
	runner := NewSuccessMockProcessRunner([]byte(histogramOutput))
	e := NewExtractor(testConfig(), WithRunner(runner))

	palette, err := e.Extract(context.Background(), "photo.jpg", 2)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if palette.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", palette.Len())
	}
	if palette.Entries[0].Hex != "#0000ff" || palette.Entries[0].Count != 12 {
		t.Errorf("unexpected first entry: %+v", palette.Entries[0])
	}
	if runner.CallCount() != 1 {
		t.Errorf("expected 1 call, got %d", runner.CallCount())
	}
	if runner.LastCall().Path != "magick" {
		t.Errorf("expected magick to be invoked, got %q", runner.LastCall().Path)
	}
}

// TestExtractToolFailure tests that a failed invocation yields a ToolError.
func TestExtractToolFailure(t *testing.T) {
	runner := NewErrorMockProcessRunner("magick: no decode delegate for this image format")
	e := NewExtractor(testConfig(), WithRunner(runner))

	_, err := e.Extract(context.Background(), "photo.heic", 8)
	if err == nil {
		t.Fatal("Expected error from failing tool")
	}

	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected *ToolError, got %T", err)
	}
	if toolErr.Tool != "magick" {
		t.Errorf("Tool = %q, want magick", toolErr.Tool)
	}
	if !strings.Contains(toolErr.Output, "no decode delegate") {
		t.Errorf("Output missing diagnostics: %q", toolErr.Output)
	}
	if runner.CallCount() != 1 {
		t.Errorf("expected no retries, got %d calls", runner.CallCount())
	}
}

// TestExtractInvalidColours tests colour count validation.
func TestExtractInvalidColours(t *testing.T) {
	for _, n := range []int{0, -1} {
		runner := NewMockProcessRunner()
		e := NewExtractor(testConfig(), WithRunner(runner))

		if _, err := e.Extract(context.Background(), "a.png", n); err == nil {
			t.Errorf("Expected error for colour count %d", n)
		}
		if runner.CallCount() != 0 {
			t.Errorf("tool should not run for colour count %d", n)
		}
	}
}

// TestExtractLargeColourCount tests that counts above 256 are passed through to ImageMagick.
func TestExtractLargeColourCount(t *testing.T) {
	runner := NewSuccessMockProcessRunner([]byte(histogramOutput))
	e := NewExtractor(testConfig(), WithRunner(runner))

	if _, err := e.Extract(context.Background(), "photo.jpg", 300); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if runner.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", runner.CallCount())
	}
	if got := runner.LastCall().Args[4]; got != "300" {
		t.Errorf("-colors value = %q, want 300", got)
	}
}

// TestExtractContextCancelled tests that cancellation is not reported as a tool failure.
func TestExtractContextCancelled(t *testing.T) {
	runner := NewTimeoutMockProcessRunner()
	e := NewExtractor(testConfig(), WithRunner(runner))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := e.Extract(ctx, "a.png", 4)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		t.Error("cancellation should not be a ToolError")
	}
}

// TestTranscoderArgs tests the ffmpeg command line.
func TestTranscoderArgs(t *testing.T) {
	tr := NewTranscoder(DefaultConfig())

	got := tr.Args("clip.mov", "/tmp/x/converted.png")
	want := []string{"-hide_banner", "-y", "-i", "clip.mov", "-frames:v", "1", "/tmp/x/converted.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Args() = %v, want %v", got, want)
	}
}

// TestTranscodeFailure tests that ffmpeg diagnostics are captured.
func TestTranscodeFailure(t *testing.T) {
	runner := &MockProcessRunner{
		RunFunc: func(ctx context.Context, path string, args []string, stdin io.Reader) ([]byte, []byte, error) {
			return []byte("partial"), []byte("Invalid data found when processing input"), errors.New("exit status 1")
		},
	}
	tr := NewTranscoder(DefaultConfig(), WithRunner(runner))

	err := tr.Transcode(context.Background(), "broken.bin", "/tmp/out.png")
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected *ToolError, got %v", err)
	}
	if toolErr.Output != "Invalid data found when processing input\npartial" {
		t.Errorf("Output = %q", toolErr.Output)
	}
	if toolErr.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1 for a non-exit error", toolErr.ExitCode)
	}
}

// TestTranscodeSuccess tests a successful transcode.
func TestTranscodeSuccess(t *testing.T) {
	runner := NewMockProcessRunner()
	tr := NewTranscoder(DefaultConfig(), WithRunner(runner))

	if err := tr.Transcode(context.Background(), "clip.mov", "/tmp/out.png"); err != nil {
		t.Fatalf("Transcode failed: %v", err)
	}
	if runner.LastCall().Path != "ffmpeg" {
		t.Errorf("expected ffmpeg to be invoked, got %q", runner.LastCall().Path)
	}
}

// TestToolErrorMessage tests error formatting for exit codes.
func TestToolErrorMessage(t *testing.T) {
	err := &ToolError{Tool: "magick", ExitCode: 1, Err: errors.New("exit status 1")}
	if got := err.Error(); got != "magick exited with status 1" {
		t.Errorf("Error() = %q", got)
	}

	notFound := &ToolError{Tool: "magick", ExitCode: -1, Err: exec.ErrNotFound}
	if !errors.Is(notFound, exec.ErrNotFound) {
		t.Error("expected ToolError to unwrap to its cause")
	}
}

// TestRealProcessRunner tests the os/exec runner against a shell.
func TestRealProcessRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	r := NewRealProcessRunner()

	stdout, stderr, err := r.Run(context.Background(), sh, []string{"-c", "echo out; echo err >&2"}, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if string(stdout) != "out\n" || string(stderr) != "err\n" {
		t.Errorf("stdout=%q stderr=%q", stdout, stderr)
	}

	stdout, stderr, err = r.Run(context.Background(), sh, []string{"-c", "echo bad >&2; exit 3"}, nil)
	toolErr := newToolError("sh", nil, stdout, stderr, err)
	if toolErr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", toolErr.ExitCode)
	}
	if toolErr.Output != "bad" {
		t.Errorf("Output = %q, want bad", toolErr.Output)
	}
}

// TestConfigWithEnv tests environment overrides.
func TestConfigWithEnv(t *testing.T) {
	t.Setenv(EnvMagick, "/opt/im/bin/magick")
	t.Setenv(EnvFFmpeg, "/opt/ff/ffmpeg")
	t.Setenv(EnvMaxDimension, "640")

	cfg, err := DefaultConfig().WithEnv()
	if err != nil {
		t.Fatalf("WithEnv failed: %v", err)
	}
	if cfg.Magick != "/opt/im/bin/magick" || cfg.FFmpeg != "/opt/ff/ffmpeg" || cfg.MaxDimension != 640 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}

	t.Setenv(EnvMaxDimension, "big")
	if _, err := DefaultConfig().WithEnv(); err == nil {
		t.Error("Expected error for non-numeric max dimension")
	}
}

// TestConfigValidate tests configuration validation.
func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "defaults", modify: func(*Config) {}, wantErr: false},
		{name: "zero dimension", modify: func(c *Config) { c.MaxDimension = 0 }, wantErr: true},
		{name: "empty ffmpeg", modify: func(c *Config) { c.FFmpeg = "" }, wantErr: true},
		{name: "empty converted name", modify: func(c *Config) { c.ConvertedName = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestResolveMagick tests ImageMagick 7/6 binary selection.
func TestResolveMagick(t *testing.T) {
	original := lookPath
	t.Cleanup(func() { lookPath = original })

	tests := []struct {
		name      string
		magick    string
		installed []string
		want      string
	}{
		{name: "explicit", magick: "/usr/local/bin/magick", want: "/usr/local/bin/magick"},
		{name: "imagemagick 7", installed: []string{"magick", "convert"}, want: "magick"},
		{name: "imagemagick 6", installed: []string{"convert"}, want: "convert"},
		{name: "nothing installed", want: "magick"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookPath = func(file string) (string, error) {
				for _, name := range tt.installed {
					if name == file {
						return "/usr/bin/" + file, nil
					}
				}
				return "", exec.ErrNotFound
			}

			cfg := DefaultConfig()
			cfg.Magick = tt.magick
			if got := cfg.ResolveMagick(); got != tt.want {
				t.Errorf("ResolveMagick() = %q, want %q", got, tt.want)
			}
		})
	}
}
