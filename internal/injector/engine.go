package injector

import (
	"go.uber.org/multierr"

	"github.com/gogpu/varlet/editor"
)

// Step runs one editor frame: the viewport reacts to input and panel
// size, the scene updates, the renderer draws, and per-frame input
// transitions are cleared.
func (e *Engine) Step(dt float64, f editor.Frame) (editor.Display, error) {
	d, err := e.Viewport.Update(f)
	e.Scene.Update(dt)
	err = multierr.Append(err, e.Renderer.RenderFrame())
	e.Input.Next()
	return d, err
}
