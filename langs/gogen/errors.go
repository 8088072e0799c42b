package gogen

import "errors"

// ErrGenerateGoCode is returned when Go code generation encounters an output node it cannot render.
var ErrGenerateGoCode = errors.New("gogen: generate go code failure")
