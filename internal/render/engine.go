// Package render's engine.go is the GL display host: it owns the
// window, GL context, and the fullscreen-quad/texture pipeline that
// uploads the CPU-traced Framebuffer to the screen every frame
// (spec.md §6's canvas contract). Adapted from the teacher's voxel
// Engine — window/context bootstrap and the Run main-loop shape are
// kept, the voxel-specific texture atlas, particle system, and GLSL
// voxel shader are dropped since the tracer has no GPU geometry to
// draw, only a pixel buffer to present.
package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Engine owns the window, GL context, and display quad. It does not
// own the Camera or Scene (spec.md §9 design note): those are
// constructed and driven by the caller, which calls UploadFrame once
// per frame with the kernel's output.
type Engine struct {
	window *glfw.Window
	width  int
	height int

	imageWidth, imageHeight int

	displayShader    *Shader
	quadVAO, quadVBO uint32
	texture          uint32

	input *Input

	lastFrame float64
	deltaTime float32

	onUpdate func(dt float32)
	onRender func()
	onResize func(width, height int)
}

// Config contains engine configuration.
type Config struct {
	Width, Height           int
	Title                   string
	VSync                   bool
	ImageWidth, ImageHeight int // render resolution, may differ from window size
}

// DefaultConfig returns default engine configuration.
func DefaultConfig() Config {
	return Config{
		Width:       1280,
		Height:      720,
		Title:       "Path Tracer",
		VSync:       true,
		ImageWidth:  1280,
		ImageHeight: 720,
	}
}

// NewEngine creates the window, GL context, and display pipeline.
func NewEngine(config Config) (*Engine, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()

	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	fmt.Printf("[render] OpenGL version: %s\n", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.ClearColor(0, 0, 0, 1)

	e := &Engine{
		window:       window,
		width:        config.Width,
		height:       config.Height,
		imageWidth:   config.ImageWidth,
		imageHeight:  config.ImageHeight,
		input:        NewInput(),
	}
	e.input.SetWindowSize(config.Width, config.Height)

	e.createDisplayQuad()
	e.createTexture()

	shader, err := NewShader(displayVertShader, displayFragShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create display shader: %w", err)
	}
	e.displayShader = shader

	window.SetFramebufferSizeCallback(e.framebufferSizeCallback)
	window.SetKeyCallback(e.keyCallback)
	window.SetCursorPosCallback(e.cursorPosCallback)
	window.SetMouseButtonCallback(e.mouseButtonCallback)
	window.SetScrollCallback(e.scrollCallback)

	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)

	return e, nil
}

func (e *Engine) createTexture() {
	gl.GenTextures(1, &e.texture)
	gl.BindTexture(gl.TEXTURE_2D, e.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB32F, int32(e.imageWidth), int32(e.imageHeight), 0, gl.RGB, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

func (e *Engine) createDisplayQuad() {
	vertices := []float32{
		-1, -1, 0, 0,
		1, -1, 1, 0,
		1, 1, 1, 1,
		-1, -1, 0, 0,
		1, 1, 1, 1,
		-1, 1, 0, 1,
	}

	gl.GenVertexArrays(1, &e.quadVAO)
	gl.GenBuffers(1, &e.quadVBO)

	gl.BindVertexArray(e.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, e.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

// UploadFrame uploads fb's pixel data to the display texture (spec.md
// §6's canvas contract: "accepts the returned buffer and presents
// it").
func (e *Engine) UploadFrame(fb *Framebuffer) {
	gl.BindTexture(gl.TEXTURE_2D, e.texture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(fb.Width), int32(fb.Height), gl.RGB, gl.FLOAT, gl.Ptr(fb.Pixels))
}

// DrawFrame draws the display quad textured with the most recent
// UploadFrame call.
func (e *Engine) DrawFrame() {
	e.displayShader.Use()
	e.displayShader.SetInt("uTexture", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, e.texture)

	gl.BindVertexArray(e.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// Run starts the main loop: poll events, onUpdate(dt), onRender, swap
// buffers (spec.md §5: "the frame thread blocks on kernel completion
// before presenting the pixel buffer to the canvas").
func (e *Engine) Run(onUpdate func(dt float32), onRender func()) {
	e.onUpdate = onUpdate
	e.onRender = onRender
	e.lastFrame = glfw.GetTime()

	for !e.window.ShouldClose() {
		currentFrame := glfw.GetTime()
		e.deltaTime = float32(currentFrame - e.lastFrame)
		e.lastFrame = currentFrame
		if e.deltaTime > 0.1 {
			e.deltaTime = 0.1
		}

		glfw.PollEvents()

		if e.onUpdate != nil {
			e.onUpdate(e.deltaTime)
		}

		gl.Clear(gl.COLOR_BUFFER_BIT)
		if e.onRender != nil {
			e.onRender()
		}

		e.window.SwapBuffers()
	}
}

// Cleanup releases GL and GLFW resources.
func (e *Engine) Cleanup() {
	if e.displayShader != nil {
		e.displayShader.Delete()
	}
	if e.texture != 0 {
		gl.DeleteTextures(1, &e.texture)
	}
	if e.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &e.quadVAO)
	}
	if e.quadVBO != 0 {
		gl.DeleteBuffers(1, &e.quadVBO)
	}
	glfw.Terminate()
}

// GetInput returns the input state.
func (e *Engine) GetInput() *Input {
	return e.input
}

// GetDeltaTime returns the current frame delta time.
func (e *Engine) GetDeltaTime() float32 {
	return e.deltaTime
}

// CloseWindow closes the game window.
func (e *Engine) CloseWindow() {
	e.window.SetShouldClose(true)
}

// Callbacks

func (e *Engine) framebufferSizeCallback(w *glfw.Window, width, height int) {
	e.width = width
	e.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	e.input.SetWindowSize(width, height)

	if e.onResize != nil {
		e.onResize(width, height)
	}
}

func (e *Engine) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	e.input.HandleKey(key, action)
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
}

func (e *Engine) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	e.input.HandleMouseMove(xpos, ypos)
}

func (e *Engine) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	e.input.HandleMouseButton(button, action)
}

func (e *Engine) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	e.input.HandleScroll(xoff, yoff)
}

const displayVertShader = `
#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aTexCoord;

out vec2 vTexCoord;

void main() {
    gl_Position = vec4(aPos, 0.0, 1.0);
    vTexCoord = aTexCoord;
}
` + "\x00"

const displayFragShader = `
#version 410 core

in vec2 vTexCoord;

uniform sampler2D uTexture;

out vec4 fragColor;

void main() {
    fragColor = vec4(texture(uTexture, vTexCoord).rgb, 1.0);
}
` + "\x00"
