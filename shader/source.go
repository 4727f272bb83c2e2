package shader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"
	"go.uber.org/zap"

	"github.com/gogpu/varlet"
	"github.com/gogpu/varlet/backend"
)

// Paths names the per-stage source files. An empty path means no stage.
type Paths struct {
	Vertex   string
	Fragment string
	Geometry string
}

// IsZero reports whether no stage path is set.
func (p Paths) IsZero() bool {
	return p == Paths{}
}

// LoadSources reads every stage file. Files ending in ".wgsl" are
// translated to GLSL 4.10 core. A file that cannot be read or translated
// yields an empty stage and a warning.
func LoadSources(p Paths) Sources {
	return Sources{
		Vertex:   loadStage(p.Vertex, backend.StageVertex),
		Fragment: loadStage(p.Fragment, backend.StageFragment),
		Geometry: loadStage(p.Geometry, backend.StageGeometry),
	}
}

// Load reads the stage files and compiles them with New.
func Load(b backend.Programs, p Paths, opts ...Option) *Shader {
	return New(b, LoadSources(p), opts...)
}

func loadStage(path string, stage backend.Stage) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		varlet.Logger().Warn("shader source unavailable",
			zap.String("path", path),
			zap.Stringer("stage", stage),
			zap.Error(err))
		return ""
	}
	return prepareStage(path, string(data), stage)
}

// prepareStage translates WGSL sources; GLSL passes through.
func prepareStage(path, src string, stage backend.Stage) string {
	if !strings.EqualFold(filepath.Ext(path), ".wgsl") {
		return src
	}
	out, err := TranslateWGSL(src, stage)
	if err != nil {
		varlet.Logger().Warn("shader source translation failed",
			zap.String("path", path),
			zap.Stringer("stage", stage),
			zap.Error(err))
		return ""
	}
	return out
}

var irStages = map[backend.Stage]ir.ShaderStage{
	backend.StageVertex:   ir.StageVertex,
	backend.StageFragment: ir.StageFragment,
}

// TranslateWGSL converts the WGSL entry point for stage into GLSL 4.10
// core source. Geometry has no WGSL equivalent.
//
// WGSL uniforms become GLSL uniform blocks, which reflection does not
// list; set them through the block members' names instead.
func TranslateWGSL(src string, stage backend.Stage) (string, error) {
	want, ok := irStages[stage]
	if !ok {
		return "", fmt.Errorf("%w: no WGSL %s stage", ErrTranslate, stage)
	}

	ast, err := naga.Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: parse: %w", ErrTranslate, err)
	}
	module, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return "", fmt.Errorf("%w: lower: %w", ErrTranslate, err)
	}

	entry := ""
	for _, ep := range module.EntryPoints {
		if ep.Stage == want {
			entry = ep.Name
			break
		}
	}
	if entry == "" {
		return "", fmt.Errorf("%w: no %s entry point", ErrTranslate, stage)
	}

	out, _, err := glsl.Compile(module, glsl.Options{
		LangVersion: glsl.Version410,
		EntryPoint:  entry,
	})
	if err != nil {
		return "", fmt.Errorf("%w: glsl: %w", ErrTranslate, err)
	}
	return out, nil
}
