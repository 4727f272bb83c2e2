package shader

import "errors"

var (
	// ErrUnsupportedValue is returned by Set for Go types no typed setter accepts.
	ErrUnsupportedValue = errors.New("shader: unsupported uniform value type")

	// ErrTranslate is returned when a WGSL source cannot be translated.
	ErrTranslate = errors.New("shader: wgsl translation failed")
)
