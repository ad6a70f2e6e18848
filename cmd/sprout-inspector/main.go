// Command sprout-inspector mounts a YAML scene, draws a box preview of it with
// Ebiten, and shows the element tree and component inspector in Dear ImGui.
// Clicking a box selects its entity. The scene is reloaded when the file changes.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/sprout/debugui"
	debugui_ebiten "github.com/plus3/sprout/debugui/ebiten"
	"github.com/plus3/sprout/ecs"
	"github.com/plus3/sprout/internal/scene"
	"github.com/plus3/sprout/ui"
	"github.com/plus3/sprout/view"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

// Game implements ebiten.Game for the inspector.
type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	backend   *ecs.Singleton[debugui_ebiten.ImguiBackend]
	input     *ecs.Singleton[debugui.ImguiInputState]
	inspector *debugui.Inspector
	rebuilds  *view.RebuildSystem

	mounted *scene.Mounted
	root    *view.Root
	reloads chan *scene.Scene

	boxes         []box
	width, height int
}

func (g *Game) Update() error {
	g.applyReloads()

	g.backend.Get().BeginFrame()
	g.scheduler.Once(1.0 / 60.0)

	if g.root.Mounted() {
		g.boxes = layoutBoxes(g.world, g.root.Nodes().Entity(), 0, 0, float32(g.width), float32(g.height))
	} else {
		g.boxes = nil
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !g.input.Get().WantCaptureMouse {
		x, y := ebiten.CursorPosition()
		if b, ok := hit(g.boxes, float32(x), float32(y)); ok {
			g.inspector.Select(b.entity)
		}
	}

	g.backend.Get().EndFrame()
	return nil
}

// applyReloads applies scenes sent by the file watcher on the game goroutine.
func (g *Game) applyReloads() {
	for {
		select {
		case s := <-g.reloads:
			if err := g.mounted.Apply(s); err != nil {
				log.Printf("Reload failed: %v", err)
				continue
			}
			if root := g.mounted.Root(); root != g.root {
				g.root = root
				g.rebuilds.Add(root)
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawBoxes(screen, g.boxes, g.inspector.Selected())
	g.backend.Get().Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Get().Layout(outsideWidth, outsideHeight)
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func main() {
	scenePath := flag.String("scene", "", "Path to the YAML scene to inspect.")
	verbose := flag.Bool("v", false, "Log lifecycle diagnostics to stderr.")
	flag.Parse()

	if *scenePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	var logger *log.Logger
	if *verbose {
		logger = log.New(os.Stderr, "sprout-inspector: ", log.LstdFlags)
	}

	world := ui.NewWorld()
	debugui.RegisterComponents(world.Registry())

	s, err := scene.Load(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	mounted, err := scene.Mount(world, s, logger)
	if err != nil {
		log.Fatalf("Failed to mount scene: %v", err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	backend := debugui_ebiten.Install(world, "Sprout Inspector", ScreenWidth, ScreenHeight)

	rebuilds := &view.RebuildSystem{Logger: logger}
	rebuilds.Add(mounted.Root())

	scheduler := ecs.NewScheduler(world)
	scheduler.Register(rebuilds)
	scheduler.Register(debugui.NewImguiSystem(world))

	game := &Game{
		world:     world,
		scheduler: scheduler,
		backend:   backend,
		input:     ecs.NewSingleton[debugui.ImguiInputState](world),
		inspector: debugui.Spawn(world, 120),
		rebuilds:  rebuilds,
		mounted:   mounted,
		root:      mounted.Root(),
		reloads:   make(chan *scene.Scene, 1),
		width:     ScreenWidth,
		height:    ScreenHeight,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		err := scene.Watch(ctx, *scenePath, func() {
			s, err := scene.Load(*scenePath)
			if err != nil {
				log.Printf("Reload failed: %v", err)
				return
			}
			game.reloads <- s
		})
		if err != nil {
			log.Printf("Watch stopped: %v", err)
		}
	}()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
	if err := mounted.Close(); err != nil {
		log.Printf("Failed to unmount scene: %v", err)
	}
}
