package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Carmen-Shannon/anatomy-viewer/config"
	"github.com/Carmen-Shannon/anatomy-viewer/engine"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/controller"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/viewpoint"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/window"
)

func main() {
	var (
		configPath = flag.String("config", "viewer.yaml", "path to the viewer config")
		viewURL    = flag.String("url", "", "viewer URL whose trailing viewpoint overrides the config preset")
		logLevel   = flag.String("log-level", "", "log level override (debug, info, warn, error)")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("config load failed")
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *viewURL != "" {
		cfg.ViewpointPreset = nil
		cfg.ViewpointURL = *viewURL
	}
	zerolog.SetGlobalLevel(cfg.Level())

	preset, err := cfg.Preset()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid viewpoint")
	}

	if err := renderer.Probe(cfg.Renderer.ForceSoftware); err != nil {
		log.Error().Err(err).Msg("environment probe failed")
		if errors.Is(err, renderer.ErrUnsupportedEnvironment) {
			fmt.Fprintln(os.Stderr, "This viewer needs a GPU with WebGPU support (Vulkan, Metal or Direct3D 12), and none was found.")
		}
		os.Exit(1)
	}

	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)

	var v engine.Viewer
	onHelp := func(visible bool) {
		if visible && v != nil {
			printHelp(v.HelpConfigs())
		}
	}
	v, err = engine.NewViewer(buildOptions(cfg, win, preset, onHelp)...)
	if err != nil {
		log.Fatal().Err(err).Msg("viewer setup failed")
	}
	if err := v.Load(cfg.Objects); err != nil {
		log.Fatal().Err(err).Msg("invalid object list")
	}
	v.Run()
	log.Info().Str("viewpoint", v.GenerateURL()).Msg("viewer closed")
}

func buildOptions(cfg *config.Config, win window.Window, preset *viewpoint.Preset, onHelp func(visible bool)) []engine.ViewerBuilderOption {
	logger := log.Logger

	rendererOptions := []renderer.RendererBuilderOption{
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
	}
	if !cfg.Renderer.VSync {
		rendererOptions = append(rendererOptions, renderer.WithPresentMode(renderer.PresentModeUncapped))
	}
	if !cfg.Renderer.MSAA {
		rendererOptions = append(rendererOptions, renderer.WithMSAA(renderer.MSAAOff))
	}
	if cfg.Renderer.ClearColor != nil {
		rendererOptions = append(rendererOptions, renderer.WithClearColor(*cfg.Renderer.ClearColor))
	}

	options := []engine.ViewerBuilderOption{
		engine.WithWindow(win),
		engine.WithLogger(logger),
		engine.WithRendererOptions(rendererOptions...),
		engine.WithRenderFrameLimit(cfg.Renderer.FrameLimit),
		engine.WithProfiling(cfg.Profiling),
		engine.WithZoomLimits(cfg.Zoom),
		engine.WithPreset(preset),
		engine.WithSensitivity(cfg.Sensitivity),
		engine.WithPicking(cfg.PickPolicy(), cfg.Picking.PrimaryView),
		engine.WithPickTriggers(cfg.Picking.OnClick, cfg.Picking.OnHover),
		engine.WithLayers(cfg.LayerOrder, cfg.Layers),
		engine.WithMeshDir(cfg.MeshDir),
		engine.WithBaseURL(cfg.BaseURL),
		engine.WithSelectionHandler(func(obj scene_object.SceneObject) {
			if obj == nil {
				logger.Info().Msg("selection cleared")
				return
			}
			desc := obj.Descriptor()
			logger.Info().Str("id", desc.ID).Str("name", obj.Name()).Str("link", desc.Link).Msg("structure selected")
		}),
		engine.WithHelpHandler(onHelp),
	}
	if cfg.Gestures {
		options = append(options, engine.WithGestures(func(item controller.MenuItem) {
			logger.Info().Int("item", int(item)).Msg("gesture menu item chosen")
		}))
	}
	return options
}

// printHelp writes the controls to stderr since the viewer draws no text overlay.
func printHelp(configs []controller.HelpConfig) {
	for _, help := range configs {
		fmt.Fprintln(os.Stderr, help.Title)
		for _, item := range help.Items {
			fmt.Fprintf(os.Stderr, "  %-20s %s\n", item.Control, item.Description)
		}
	}
}
