package main

// External resource compiler shim
// Builds the rcc/pyside2-rcc command line from explicit options and runs
// it as a child process. The compiler is a black box: we forward its exit
// status and captured output, nothing more. No retries, no interpretation
// of its messages.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"time"
)

// Output formats understood by BuildCommand.
const (
	FormatPythonModule = "python-module"
	FormatBinary       = "binary"
)

// CompressionNone asks the compiler for no compression at all
// (-no-compress). Level 0 leaves the compiler's own default in place,
// 1..9 select an explicit level.
const CompressionNone = -1

// CompileOptions is the explicit configuration handed to the shim. There
// is deliberately no global fallback: callers fill it from Settings.
type CompileOptions struct {
	Compression int    // CompressionNone, or 0..9
	Threshold   int    // compress-threshold percent, 0 disables the flag
	RootPrefix  string // --root value, empty to omit
	Format      string // FormatPythonModule (default) or FormatBinary
}

// CompileResult carries exactly what the child process reported.
type CompileResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

const checkCompilerTimeout = 5 * time.Second

// BuildCommand assembles the argument vector for one compile run. Pure
// function, no side effects; the token layout matches the compiler's own
// documentation:
//
//	program -o output [-no-compress | -compress N] [-threshold N]
//	        [--root P] [-binary] manifest
func BuildCommand(program, manifestPath, outputPath string, opts CompileOptions) ([]string, error) {
	if program == "" {
		return nil, fmt.Errorf("%w: compiler program not set", ErrInvalidOption)
	}
	if manifestPath == "" || outputPath == "" {
		return nil, fmt.Errorf("%w: manifest and output paths are required", ErrInvalidOption)
	}
	if opts.Compression < CompressionNone || opts.Compression > 9 {
		return nil, fmt.Errorf("%w: compression level %d not in 0-9", ErrInvalidOption, opts.Compression)
	}
	if opts.Threshold < 0 || opts.Threshold > 100 {
		return nil, fmt.Errorf("%w: threshold %d not in 0-100", ErrInvalidOption, opts.Threshold)
	}

	argv := []string{program, "-o", outputPath}
	switch {
	case opts.Compression == CompressionNone:
		argv = append(argv, "-no-compress")
	case opts.Compression > 0:
		argv = append(argv, "-compress", strconv.Itoa(opts.Compression))
	}
	if opts.Threshold > 0 {
		argv = append(argv, "-threshold", strconv.Itoa(opts.Threshold))
	}
	if opts.RootPrefix != "" {
		argv = append(argv, "--root", opts.RootPrefix)
	}
	switch opts.Format {
	case "", FormatPythonModule:
		// compiler default output
	case FormatBinary:
		argv = append(argv, "-binary")
	default:
		return nil, fmt.Errorf("%w: output format %q", ErrInvalidOption, opts.Format)
	}
	argv = append(argv, manifestPath)
	return argv, nil
}

// Invoke runs the prepared command and blocks until the child exits, the
// timeout elapses or ctx is canceled. On timeout or cancel the child is
// killed, never leaked. Captured output is returned even when the
// compiler fails so the caller can surface it verbatim.
func Invoke(ctx context.Context, argv []string, timeout time.Duration) (CompileResult, error) {
	var result CompileResult
	if len(argv) == 0 {
		return result, fmt.Errorf("%w: empty command", ErrInvalidOption)
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Printf("Executing compiler: %v\n", argv)
	err := cmd.Run()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err == nil {
		result.ExitCode = 0
		return result, nil
	}

	result.ExitCode = -1
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return result, fmt.Errorf("%w after %s", ErrCompileTimeout, timeout)
	case errors.Is(ctx.Err(), context.Canceled):
		return result, fmt.Errorf("compile canceled: %w", context.Canceled)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, fmt.Errorf("%w: exit status %d", ErrCompilerExit, result.ExitCode)
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) || errors.Is(err, os.ErrNotExist) {
		return result, fmt.Errorf("%w: %s", ErrCompilerNotFound, argv[0])
	}
	return result, fmt.Errorf("run compiler: %w", err)
}

// CheckCompiler probes the configured program with -help, the same check
// the settings dialog runs before accepting a new compiler path. The
// captured help text is returned for display.
func CheckCompiler(program string) (string, error) {
	result, err := Invoke(context.Background(), []string{program, "-help"}, checkCompilerTimeout)
	if err != nil {
		return "", err
	}
	return result.Stdout, nil
}
