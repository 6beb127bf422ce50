package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/Korport/RacingGame/internal/app"
	"github.com/Korport/RacingGame/internal/game"
)

// keyCommands lists the edge-triggered keys. Letter keys also reach the
// name prompt through the char callback; the results screen ignores their
// commands while the prompt is open.
var keyCommands = []struct {
	key glfw.Key
	cmd app.Command
}{
	{glfw.KeyLeft, app.CmdLeft},
	{glfw.KeyA, app.CmdLeft},
	{glfw.KeyRight, app.CmdRight},
	{glfw.KeyD, app.CmdRight},
	{glfw.KeyUp, app.CmdUp},
	{glfw.KeyW, app.CmdUp},
	{glfw.KeyDown, app.CmdDown},
	{glfw.KeyS, app.CmdSettings},
	{glfw.KeyEnter, app.CmdConfirm},
	{glfw.KeyKPEnter, app.CmdConfirm},
	{glfw.KeySpace, app.CmdRestart},
	{glfw.KeyR, app.CmdRestart},
	{glfw.KeyEscape, app.CmdBack},
	{glfw.KeyBackspace, app.CmdErase},
	{glfw.KeyM, app.CmdMute},
}

type Input struct {
	prevKeys map[glfw.Key]bool
	cmds     []app.Command
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Commands returns the commands whose keys went down since the last call.
func (in *Input) Commands(window *glfw.Window) []app.Command {
	in.cmds = in.cmds[:0]
	for _, kc := range keyCommands {
		if in.JustPressed(window, kc.key) {
			in.cmds = append(in.cmds, kc.cmd)
		}
	}
	return in.cmds
}

// Steering samples the held arrow and A/D keys.
func Steering(window *glfw.Window) game.Input {
	down := func(keys ...glfw.Key) bool {
		for _, k := range keys {
			if window.GetKey(k) == glfw.Press {
				return true
			}
		}
		return false
	}
	return game.Input{
		Left:  down(glfw.KeyLeft, glfw.KeyA),
		Right: down(glfw.KeyRight, glfw.KeyD),
	}
}
