package main

import "errors"

// Sentinel errors shared by the model, the serializer and the compiler
// shim. Callers wrap them with fmt.Errorf("...: %w", ...) and match with
// errors.Is.
var (
	ErrInvalidIdentifier  = errors.New("invalid identifier")
	ErrNotFound           = errors.New("not found")
	ErrOutOfRange         = errors.New("index out of range")
	ErrMalformedManifest  = errors.New("malformed manifest")
	ErrUnsupportedVersion = errors.New("unsupported manifest version")
	ErrInvalidOption      = errors.New("invalid option")
	ErrCompilerNotFound   = errors.New("compiler not found")
	ErrCompileTimeout     = errors.New("compiler timed out")
	ErrCompilerExit       = errors.New("compiler exited with an error")
)
