// Package window owns the SDL2 windowing collaborator: window creation,
// event polling and the Vulkan loader hookup.
package window

import (
	"fmt"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/vantage3d/vantage/core"
)

// NewSystem initializes SDL with video and event support and loads the
// Vulkan library. Must run on the locked main thread.
func NewSystem() (*System, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("sdl.Init(): %w", err)
	}
	if err := sdl.VulkanLoadLibrary(""); err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl.VulkanLoadLibrary(): %w", err)
	}
	return &System{}, nil
}

// System implements core.WindowSystem on SDL2.
type System struct{}

// InstanceProcAddr exposes the loader entry point for the driver.
func (s *System) InstanceProcAddr() unsafe.Pointer {
	return sdl.VulkanGetVkGetInstanceProcAddr()
}

// CreateWindow implements core.WindowSystem. The window is fixed size,
// not resizable, and carries no secondary graphics context.
func (s *System) CreateWindow(cfg core.WindowConfiguration) (core.Window, error) {
	win, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_VULKAN)
	if err != nil {
		return nil, fmt.Errorf("sdl.CreateWindow(): %w", err)
	}
	return &Window{win: win}, nil
}

// Terminate implements core.WindowSystem.
func (s *System) Terminate() {
	sdl.VulkanUnloadLibrary()
	sdl.Quit()
}

// Window implements core.Window on one SDL2 window.
type Window struct {
	win    *sdl.Window
	closed bool
}

// InstanceExtensions implements core.Window.
func (w *Window) InstanceExtensions() []string {
	return w.win.VulkanGetInstanceExtensions()
}

// PollEvents implements core.Window. A quit event or ESC marks the
// window for closing.
func (w *Window) PollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch et := event.(type) {
		case *sdl.KeyboardEvent:
			if et.Keysym.Sym == sdl.K_ESCAPE {
				w.closed = true
			}
		case *sdl.QuitEvent:
			w.closed = true
		}
	}
}

// ShouldClose implements core.Window.
func (w *Window) ShouldClose() bool {
	return w.closed
}

// Destroy implements core.Window.
func (w *Window) Destroy() {
	w.win.Destroy()
}
