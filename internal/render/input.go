// Package render provides input handling
package render

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Input handles keyboard and mouse input
type Input struct {
	// Keyboard state
	keys map[glfw.Key]bool

	// Mouse state
	mouseButtons map[glfw.MouseButton]bool

	// Mouse position
	mouseX, mouseY         float64
	lastMouseX, lastMouseY float64
	firstMouse             bool

	// Mouse delta
	mouseDeltaX, mouseDeltaY float64

	// Scroll
	scrollX, scrollY float64

	// Window size, used to normalize mouse position into [0,1]² for
	// Camera.SetCursor (spec.md §6).
	windowWidth, windowHeight int
}

// NewInput creates a new input handler
func NewInput() *Input {
	return &Input{
		keys:         make(map[glfw.Key]bool),
		mouseButtons: make(map[glfw.MouseButton]bool),
		firstMouse:   true,
		windowWidth:  1,
		windowHeight: 1,
	}
}

// SetWindowSize records the current framebuffer size, used to normalize
// the cursor position (spec.md §6).
func (i *Input) SetWindowSize(width, height int) {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	i.windowWidth = width
	i.windowHeight = height
}

// ApplyTo buffers this frame's direction keys and cursor position onto
// cam, the translation layer between glfw's raw key/mouse state and the
// camera's abstract input model (spec.md §6): left/right is the camera's
// i axis, up/down is j, forward/backward is k.
func (i *Input) ApplyTo(cam *Camera) {
	var x, y, z float32
	if i.IsKeyPressed(glfw.KeyD) {
		x++
	}
	if i.IsKeyPressed(glfw.KeyA) {
		x--
	}
	if i.IsKeyPressed(glfw.KeySpace) {
		y++
	}
	if i.IsKeyPressed(glfw.KeyLeftShift) {
		y--
	}
	if i.IsKeyPressed(glfw.KeyS) {
		z++
	}
	if i.IsKeyPressed(glfw.KeyW) {
		z--
	}
	cam.SetInputDir(x, y, z)

	cursorX := float32(i.mouseX / float64(i.windowWidth))
	cursorY := float32(i.mouseY / float64(i.windowHeight))
	cam.SetCursor(cursorX, cursorY)
}

// HandleKey processes keyboard events
func (i *Input) HandleKey(key glfw.Key, action glfw.Action) {
	if action == glfw.Press {
		i.keys[key] = true
	} else if action == glfw.Release {
		i.keys[key] = false
	}
}

// HandleMouseMove processes mouse movement
func (i *Input) HandleMouseMove(xpos, ypos float64) {
	if i.firstMouse {
		i.lastMouseX = xpos
		i.lastMouseY = ypos
		i.firstMouse = false
	}

	i.mouseDeltaX = xpos - i.lastMouseX
	i.mouseDeltaY = i.lastMouseY - ypos // Y is inverted

	i.lastMouseX = xpos
	i.lastMouseY = ypos
	i.mouseX = xpos
	i.mouseY = ypos
}

// HandleMouseButton processes mouse button events
func (i *Input) HandleMouseButton(button glfw.MouseButton, action glfw.Action) {
	if action == glfw.Press {
		i.mouseButtons[button] = true
	} else if action == glfw.Release {
		i.mouseButtons[button] = false
	}
}

// HandleScroll processes scroll events
func (i *Input) HandleScroll(xoff, yoff float64) {
	i.scrollX = xoff
	i.scrollY = yoff
}

// IsKeyPressed returns true if a key is currently pressed
func (i *Input) IsKeyPressed(key glfw.Key) bool {
	return i.keys[key]
}
