package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/taigrr/driedee/pkg/engine"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	cfg = engine.DefaultConfig()
	logPath, debug = "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestSnapshotCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.png")
	execute(t, "snapshot", "--shape", "cube", "--width", "64", "--height", "48",
		"--frames", "3", "--out", path, "--log", filepath.Join(t.TempDir(), "log.txt"))

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("bounds = %v", b)
	}
	if r, _, _, _ := img.At(32, 24).RGBA(); r == 0 {
		t.Error("center pixel is black, want the cube")
	}
}

func TestInfoCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	if err := os.WriteFile(path, []byte("v 0 0 0\nv 2 0 0\nv 0 2 0\nf 1 2 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := execute(t, "info", path)
	for _, want := range []string{"Name: tri.obj", "Vertices: 3", "Triangles: 1", "Surface Area: 2.000000", "Width (X): 2.000000"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTerminalAction(t *testing.T) {
	match := func(key string) func(...string) bool {
		return func(names ...string) bool { return slices.Contains(names, key) }
	}

	tests := []struct {
		key  string
		want engine.Action
	}{
		{"w", engine.ActionForward},
		{"left", engine.ActionYawLeft},
		{"shift+/", engine.ActionToggleHUD},
		{"ctrl+c", engine.ActionQuit},
		{"z", engine.ActionNone},
	}
	for _, tc := range tests {
		if got := terminalAction(match(tc.key)); got != tc.want {
			t.Errorf("terminalAction(%q) = %v, want %v", tc.key, got, tc.want)
		}
	}
}

func TestKeyBindingsUnique(t *testing.T) {
	seen := make(map[engine.Action]bool)
	for _, b := range keyBindings {
		if seen[b.action] {
			t.Errorf("action %v bound twice", b.action)
		}
		seen[b.action] = true
	}
}

func TestTicksPerSecond(t *testing.T) {
	tests := []struct {
		fps  float64
		want int
	}{
		{60, 60},
		{29.97, 30},
		{59.4, 59},
		{0.5, 1},
		{0.2, 1},
	}

	for _, tc := range tests {
		if got := ticksPerSecond(tc.fps); got != tc.want {
			t.Errorf("ticksPerSecond(%v) = %d, want %d", tc.fps, got, tc.want)
		}
	}
}
