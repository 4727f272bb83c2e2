// Package editor holds the editor-side models that drive a scene camera:
// the EditorCamera fly controller and the Viewport panel that displays
// what it sees.
//
// Window chrome and input polling belong to the host. The host reports
// input through the Input interface and the panel's size and hover state
// through Frame; Viewport.Update hands back a Display describing what to
// draw in the panel.
//
//	vp := editor.NewViewport(input)
//	if err := vp.Init(scene); err != nil {
//	    return err
//	}
//	for running {
//	    disp, err := vp.Update(editor.Frame{Width: w, Height: h, Hovered: hovered})
//	    ...
//	    scene.Update(dt)
//	    renderer.RenderFrame()
//	    drawImage(disp.Texture, disp.UV0, disp.UV1)
//	}
package editor
