package opengl

import (
	"fmt"
	"runtime"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// GL calls must come from the thread that made the context current.
func init() {
	runtime.LockOSThread()
}

// Context is a GLFW window whose only purpose is to own a GL 4.1 core
// context. It is hidden unless the config asks otherwise.
type Context struct {
	Handle *glfw.Window
	Width  int
	Height int

	Version  string
	Renderer string
}

type ContextConfig struct {
	Width   int
	Height  int
	Title   string
	Visible bool
}

func DefaultContextConfig() ContextConfig {
	return ContextConfig{
		Width:  64,
		Height: 64,
		Title:  "ssao",
	}
}

// NewContext initializes GLFW, creates the window and makes its context
// current on the calling thread.
func NewContext(config ContextConfig) (*Context, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, boolToInt(config.Visible))

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		handle.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	ctx := &Context{
		Handle:   handle,
		Width:    config.Width,
		Height:   config.Height,
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
	}
	logger.Infof("OpenGL %s on %s", ctx.Version, ctx.Renderer)
	return ctx, nil
}

// Destroy closes the window and shuts GLFW down.
func (c *Context) Destroy() {
	if c.Handle != nil {
		c.Handle.Destroy()
		c.Handle = nil
	}
	glfw.Terminate()
}

func boolToInt(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
