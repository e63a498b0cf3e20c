// Package gldevice is a gfx.Device backed by OpenGL 4.5 direct state access.
//
// The GL context lives in a hidden SDL2 window. GL contexts are bound to an
// OS thread, so Open locks the calling goroutine to its thread and every
// device call must come from that goroutine until Close.
package gldevice

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/ackasset/pkg/gfx"
)

// Config holds context creation settings.
type Config struct {
	Title  string
	Width  int
	Height int
	Log    *zap.Logger
}

// Context owns the hidden window and its GL context.
type Context struct {
	config    Config
	log       *zap.Logger
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	closed    bool
}

// Open creates a hidden window with a GL 4.5 core context and loads the GL
// entry points. macOS stops at GL 4.1 and has no DSA, so Open fails there.
func Open(cfg Config) (*Context, error) {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Title == "" {
		cfg.Title = "acktool"
	}

	runtime.LockOSThread()
	c := &Context{config: cfg, log: log}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("SDL_Init failed: %w: %v", gfx.ErrNoContext, err)
	}

	// Attributes must be set before the window exists.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 5)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	var err error
	c.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN,
	)
	if err != nil {
		sdl.Quit()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w: %v", gfx.ErrNoContext, err)
	}

	c.glContext, err = c.sdlWindow.GLCreateContext()
	if err != nil {
		c.sdlWindow.Destroy()
		sdl.Quit()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w: %v", gfx.ErrNoContext, err)
	}

	if err := gl.Init(); err != nil {
		c.Close()
		return nil, fmt.Errorf("loading OpenGL: %w: %v", gfx.ErrNoContext, err)
	}

	log.Info("OpenGL context created",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)
	return c, nil
}

// Device returns the texture device bound to this context.
func (c *Context) Device() *Device {
	return &Device{ctx: c}
}

// Close destroys the context and window and releases the OS thread.
// Devices obtained from c fail with ErrNoContext afterwards.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.log.Debug("closing OpenGL context")

	if c.glContext != nil {
		sdl.GLDeleteContext(c.glContext)
	}
	if c.sdlWindow != nil {
		c.sdlWindow.Destroy()
	}
	sdl.Quit()
	runtime.UnlockOSThread()
}
