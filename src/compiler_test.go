package main

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommand(t *testing.T) {
	tests := []struct {
		name string
		opts CompileOptions
		want []string
	}{
		{
			name: "defaults",
			opts: CompileOptions{},
			want: []string{"rcc", "-o", "out.py", "in.qrc"},
		},
		{
			name: "compression level with root and python module",
			opts: CompileOptions{Compression: 5, RootPrefix: "/assets", Format: FormatPythonModule},
			want: []string{"rcc", "-o", "out.py", "-compress", "5", "--root", "/assets", "in.qrc"},
		},
		{
			name: "no compression",
			opts: CompileOptions{Compression: CompressionNone},
			want: []string{"rcc", "-o", "out.py", "-no-compress", "in.qrc"},
		},
		{
			name: "threshold",
			opts: CompileOptions{Compression: 2, Threshold: 70},
			want: []string{"rcc", "-o", "out.py", "-compress", "2", "-threshold", "70", "in.qrc"},
		},
		{
			name: "binary output",
			opts: CompileOptions{Format: FormatBinary},
			want: []string{"rcc", "-o", "out.py", "-binary", "in.qrc"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			argv, err := BuildCommand("rcc", "in.qrc", "out.py", tc.opts)
			require.NoError(t, err)
			assert.Equal(t, tc.want, argv)
		})
	}
}

func TestBuildCommandInvalidOptions(t *testing.T) {
	tests := []struct {
		name     string
		program  string
		manifest string
		output   string
		opts     CompileOptions
	}{
		{"empty program", "", "in.qrc", "out.py", CompileOptions{}},
		{"empty manifest", "rcc", "", "out.py", CompileOptions{}},
		{"empty output", "rcc", "in.qrc", "", CompileOptions{}},
		{"compression too high", "rcc", "in.qrc", "out.py", CompileOptions{Compression: 11}},
		{"compression too low", "rcc", "in.qrc", "out.py", CompileOptions{Compression: -2}},
		{"threshold too high", "rcc", "in.qrc", "out.py", CompileOptions{Threshold: 101}},
		{"threshold negative", "rcc", "in.qrc", "out.py", CompileOptions{Threshold: -1}},
		{"unknown format", "rcc", "in.qrc", "out.py", CompileOptions{Format: "tarball"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildCommand(tc.program, tc.manifest, tc.output, tc.opts)
			require.ErrorIs(t, err, ErrInvalidOption)
		})
	}
}

func TestInvokeCompilerNotFound(t *testing.T) {
	start := time.Now()
	_, err := Invoke(context.Background(), []string{"/nonexistent/definitely-not-a-compiler"}, 10*time.Second)
	require.ErrorIs(t, err, ErrCompilerNotFound)
	// must fail from the failed exec, not by burning the timeout
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestInvokeSuccess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	result, err := Invoke(context.Background(), []string{"sh", "-c", "echo compiled"}, 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "compiled\n", result.Stdout)
}

func TestInvokeCompilerExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	result, err := Invoke(context.Background(), []string{"sh", "-c", "echo oops >&2; exit 3"}, 10*time.Second)
	require.ErrorIs(t, err, ErrCompilerExit)
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "oops\n", result.Stderr)
}

func TestInvokeTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	start := time.Now()
	_, err := Invoke(context.Background(), []string{"sh", "-c", "sleep 30"}, 200*time.Millisecond)
	require.ErrorIs(t, err, ErrCompileTimeout)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestInvokeCanceled(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()
	_, err := Invoke(ctx, []string{"sh", "-c", "sleep 30"}, time.Minute)
	require.ErrorIs(t, err, context.Canceled)
}

func TestInvokeEmptyCommand(t *testing.T) {
	_, err := Invoke(context.Background(), nil, time.Second)
	require.ErrorIs(t, err, ErrInvalidOption)
}

func TestCheckCompilerNotFound(t *testing.T) {
	_, err := CheckCompiler("/nonexistent/definitely-not-a-compiler")
	require.ErrorIs(t, err, ErrCompilerNotFound)
}

func TestCheckCompiler(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	// any program that echoes usage on -help will do
	help, err := CheckCompiler("true")
	require.NoError(t, err)
	assert.Equal(t, "", help)
}
