// Noise preview tool - interactive view of the wind noise with sliders.
//
// The left texture is the grass wind texture driven by the selected noise
// source; the strip below it is the first stretch of the sample buffer.
//
// Usage: go run ./cmd/noisepreview [-config path] [-out noise.wav]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/noise"
	"github.com/pthm-cable/meadow/renderer"
	"github.com/pthm-cable/meadow/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	textureSize  = 128
	panelWidth   = windowWidth - previewSize - 30
	stripHeight  = 120
)

var kinds = []string{noise.KindSimplex, noise.KindWhite}

// previewState holds everything rebuilt when a parameter changes.
type previewState struct {
	params  config.NoiseConfig
	samples []float32
	quant   []uint8
	cursors []int32
	wind    systems.Texture
	windVX  float32
	windVZ  float32
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "noise.wav", "WAV file written by the Export button")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rl.InitWindow(windowWidth, windowHeight, "Noise Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	st := &previewState{
		params: cfg.Noise,
		windVX: float32(cfg.Grass.WindVX),
		windVZ: float32(cfg.Grass.WindVZ),
		wind:   systems.NewTexture(make([]uint8, textureSize*textureSize*systems.BytesPerPixel), textureSize),
	}
	if st.params.Kind == noise.KindWAV {
		st.params.Kind = noise.KindSimplex
	}
	velocity := systems.NewTexture(make([]uint8, textureSize*textureSize*systems.BytesPerPixel), textureSize)

	img := rl.GenImageColor(textureSize, textureSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)
	pixels := make([]color.RGBA, textureSize*textureSize)

	animating := true
	needsRegen := true
	status := ""

	for !rl.WindowShouldClose() {
		if needsRegen {
			if err := st.regenerate(); err != nil {
				status = err.Error()
			}
			needsRegen = false
		}

		if animating && len(st.quant) > 0 {
			systems.UpdateWind(st.wind, velocity, st.quant, st.cursors, systems.WindParams{
				WindVX: st.windVX,
				WindVZ: st.windVZ,
				Decay:  float32(cfg.Grass.DecayAmount),
			})
		}
		renderer.FillPixels(pixels, st.wind, renderer.ViewMagnitude)
		rl.UpdateTexture(texture, pixels)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: textureSize, Height: textureSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		drawStrip(st.samples, 10, previewSize+20, previewSize, stripHeight)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Noise Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText(fmt.Sprintf("Source: %s (%d samples)", st.params.Kind, len(st.samples)), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 30

		// Frequency slider
		rl.DrawText("Frequency (simplex step per sample)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newFreq := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.001", "0.5",
			float32(st.params.Frequency), 0.001, 0.5,
		)
		rl.DrawText(fmt.Sprintf("%.3f", st.params.Frequency), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newFreq != float32(st.params.Frequency) {
			st.params.Frequency = float64(newFreq)
			needsRegen = true
		}
		panelY += 35

		// Sample count slider
		rl.DrawText("Samples (buffer length)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newCount := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"256", "88200",
			float32(st.params.NumSamples), 256, 88200,
		)
		rl.DrawText(fmt.Sprintf("%d", st.params.NumSamples), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newCount) != st.params.NumSamples {
			st.params.NumSamples = int(newCount)
			needsRegen = true
		}
		panelY += 35

		// Seed slider
		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "99999",
			float32(st.params.Seed), 0, 99999,
		)
		rl.DrawText(fmt.Sprintf("%d", st.params.Seed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int64(newSeed) != st.params.Seed {
			st.params.Seed = int64(newSeed)
			needsRegen = true
		}
		panelY += 35

		// Wind sliders only change the encoded direction, not the noise
		rl.DrawText("Wind X / Wind Z", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		st.windVX = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"-1", "1", st.windVX, -1, 1,
		)
		panelY += 26
		st.windVZ = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"-1", "1", st.windVZ, -1, 1,
		)
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Next Source") {
			st.params.Kind = nextKind(st.params.Kind)
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			st.params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Export WAV") {
			status = exportWAV(*outPath, st.samples)
		}
		panelY += 55

		// Output YAML
		yamlText := st.yaml()
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		rl.DrawText(yamlText, int32(panelX), int32(panelY), 14, rl.Gray)

		if status != "" {
			rl.DrawText(status, int32(panelX), int32(windowHeight-50), 12, rl.Maroon)
		}
		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yamlText)
		}

		rl.EndDrawing()
	}
}

// regenerate reloads samples and reseeds the cursors.
func (st *previewState) regenerate() error {
	samples, err := noise.Load(st.params)
	if err != nil {
		st.samples, st.quant = nil, nil
		return err
	}
	st.samples = samples
	st.quant = noise.Quantize(samples)
	if st.cursors == nil {
		st.cursors = make([]int32, textureSize*textureSize)
	}
	noise.GoldenRatioCursors(st.cursors, len(samples), float64(st.params.Seed%1000)/1000)
	return nil
}

// yaml renders the current parameters as a config fragment.
func (st *previewState) yaml() string {
	out, err := yaml.Marshal(map[string]any{"noise": st.params})
	if err != nil {
		return err.Error()
	}
	return string(out)
}

// drawStrip plots the first width samples as a line graph.
func drawStrip(samples []float32, x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, rl.Color{R: 235, G: 235, B: 235, A: 255})
	rl.DrawRectangleLines(x, y, width, height, rl.DarkGray)

	n := min(int(width), len(samples))
	for i := 1; i < n; i++ {
		y0 := y + height - int32(samples[i-1]*float32(height))
		y1 := y + height - int32(samples[i]*float32(height))
		rl.DrawLine(x+int32(i-1), y0, x+int32(i), y1, rl.DarkGreen)
	}
}

// exportWAV writes samples (in [0, 1]) as a signed WAV file.
func exportWAV(path string, samples []float32) string {
	signed := make([]float32, len(samples))
	for i, v := range samples {
		signed[i] = v*2 - 1
	}
	if err := noise.WriteWAV(path, signed, noise.DefaultSampleRate); err != nil {
		slog.Error("export failed", "error", err)
		return err.Error()
	}
	slog.Info("noise exported", "path", path, "samples", len(samples))
	return "wrote " + path
}

func nextKind(kind string) string {
	for i, k := range kinds {
		if k == kind {
			return kinds[(i+1)%len(kinds)]
		}
	}
	return kinds[0]
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
