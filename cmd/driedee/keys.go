package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/taigrr/driedee/pkg/engine"
)

// keyBinding maps terminal key names and a window key to an action.
type keyBinding struct {
	names  []string
	key    ebiten.Key
	action engine.Action
}

var keyBindings = []keyBinding{
	{[]string{"w"}, ebiten.KeyW, engine.ActionForward},
	{[]string{"s"}, ebiten.KeyS, engine.ActionBackward},
	{[]string{"a"}, ebiten.KeyA, engine.ActionStrafeLeft},
	{[]string{"d"}, ebiten.KeyD, engine.ActionStrafeRight},
	{[]string{"r"}, ebiten.KeyR, engine.ActionUp},
	{[]string{"f"}, ebiten.KeyF, engine.ActionDown},
	{[]string{"left"}, ebiten.KeyArrowLeft, engine.ActionYawLeft},
	{[]string{"right"}, ebiten.KeyArrowRight, engine.ActionYawRight},
	{[]string{"up"}, ebiten.KeyArrowUp, engine.ActionPitchUp},
	{[]string{"down"}, ebiten.KeyArrowDown, engine.ActionPitchDown},
	{[]string{"x"}, ebiten.KeyX, engine.ActionToggleWireframe},
	{[]string{"space"}, ebiten.KeySpace, engine.ActionReset},
	{[]string{"?", "shift+/"}, ebiten.KeySlash, engine.ActionToggleHUD},
	{[]string{"escape", "ctrl+c"}, ebiten.KeyEscape, engine.ActionQuit},
}

// terminalAction returns the action bound to a terminal key event, given
// the event's MatchString.
func terminalAction(match func(...string) bool) engine.Action {
	for _, b := range keyBindings {
		if match(b.names...) {
			return b.action
		}
	}
	return engine.ActionNone
}
