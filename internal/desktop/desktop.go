// Package desktop runs the racer in a glfw window with an OpenGL 4.1 core
// renderer.
package desktop

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/Korport/RacingGame/internal/app"
	"github.com/Korport/RacingGame/internal/game"
)

// Run opens the window and plays until it is closed or the player quits
// from the start screen.
func Run(a *app.App, seed uint64) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	window, err := initWindow()
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()
	rend.InitTextures()
	if err := rend.InitFont(); err != nil {
		return fmt.Errorf("font: %w", err)
	}

	particles := game.NewParticleSystem(game.MaxParticles, seed^0xBEAD)
	var cam game.Camera

	sess := a.Session
	sess.Events.Subscribe(game.EventCrash, func(ev game.Event) {
		other := game.Palette.Spark
		pr := sess.World.Player.Bounds()
		for i := range sess.World.Obstacles {
			if o := &sess.World.Obstacles[i]; pr.Overlaps(o.Bounds()) {
				other = game.ObstacleColor(o.Kind)
				break
			}
		}
		particles.SpawnCrash(ev.X, ev.Y, a.Settings.Skin.Config().Body, other)
		cam.AddShake(game.CrashShakeIntensity, game.CrashShakeDuration)
	})
	sess.Events.Subscribe(game.EventReset, func(game.Event) {
		particles.Clear()
	})

	window.SetCharCallback(func(_ *glfw.Window, ch rune) {
		a.Type(ch)
	})

	input := NewInput()
	var glowBuf, normBuf []float32
	var scroll float64
	frame := uint64(0)

	a.Start()
	last := glfw.GetTime()
	for !window.ShouldClose() && !a.Quit() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		frame++

		glfw.PollEvents()
		for _, cmd := range input.Commands(window) {
			a.Handle(cmd)
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		a.Update(dt, Steering(window))
		step := min(max(dt, 0), game.MaxFrameDelta)
		if a.Screen == app.ScreenRace && sess.Running() {
			scroll += sess.World.ScrollRate * step
		}
		particles.Update(step)
		cam.Fit(fbW, fbH)
		cam.UpdateShake(step, seed^frame)

		rend.BeginFrame(cam, fbW, fbH)
		rend.DrawWorld(sess.World, a.Settings.Skin, sess.Running(), scroll)
		glowBuf, normBuf = particles.RenderData(glowBuf, normBuf)
		rend.DrawSprites(normBuf, false)
		rend.DrawGlowSprites(glowBuf)

		RenderHUD(rend, a, now)
		window.SwapBuffers()
	}
	return nil
}
