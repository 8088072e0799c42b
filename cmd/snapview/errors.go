package main

import "errors"

// Sentinel errors for command operations
var (
	ErrNoScripts        = errors.New("no method scripts given")
	ErrDuplicateMethod  = errors.New("duplicate method name")
	ErrFileExists       = errors.New("file already exists")
)
