// Command sprout-stress mounts a large element tree and rebuilds it every frame
// while its reactive inputs change, then reports frame timings and memory use.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/image/colornames"

	"github.com/plus3/sprout/ecs"
	"github.com/plus3/sprout/style"
	"github.com/plus3/sprout/ui"
	"github.com/plus3/sprout/view"
)

// inputs are the reactive values the tree reads during rebuild.
type inputs struct {
	frame  int
	toggle int
}

func row(in *inputs, i int) view.View {
	return ui.NewElement[ui.NodeBundle]().
		Named("row-"+strconv.Itoa(i)).
		Style(
			style.Func(func(sb *style.Builder) {
				sb.FlexDirection(style.FlexRow).Height(style.Px(24))
			}),
			style.Dynamic(
				func(*view.Cx) bool { return (in.frame+i)%2 == 0 },
				func(even bool, sb *style.Builder) {
					if even {
						sb.BackgroundColor(colornames.Whitesmoke)
					} else {
						sb.BackgroundColor(colornames.Lightgray)
					}
				},
			),
		).
		Children(
			ui.NewElement[ui.NodeBundle]().Named("label"),
			view.Cond(
				func(*view.Cx) bool { return (in.toggle+i)%3 == 0 },
				ui.NewElement[ui.NodeBundle]().Named("badge"),
				nil,
			),
		)
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	rows := flag.Int("rows", 1000, "The number of rows in the mounted list.")
	toggleEvery := flag.Int("toggle-every", 10, "Frames between structural changes.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()
	if *toggleEvery < 1 {
		*toggleEvery = 1
	}

	log.Println("Starting rebuild stress test...")

	world := ui.NewWorld()
	in := &inputs{}

	children := make([]view.View, *rows)
	for i := range children {
		children[i] = row(in, i)
	}
	tree := ui.NewElement[ui.NodeBundle]().
		Named("list").
		Style(style.Func(func(sb *style.Builder) { sb.FlexDirection(style.FlexColumn) })).
		Children(children...)

	log.Printf("Mounting %d rows...\n", *rows)
	root, err := view.Mount(world, tree)
	if err != nil {
		log.Fatalf("Failed to mount tree: %v", err)
	}
	log.Printf("Mounted %d entities.\n", world.Len())

	rebuilds := &view.RebuildSystem{Logger: log.Default()}
	rebuilds.Add(root)
	scheduler := ecs.NewScheduler(world)
	scheduler.Register(rebuilds)

	report := &Report{
		Duration:       *duration,
		Rows:           *rows,
		Entities:       world.Len(),
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)
	startTick := world.ChangeTick()

	log.Printf("Running for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			in.frame++
			if in.frame%*toggleEvery == 0 {
				in.toggle++
			}

			updateStart := time.Now()
			scheduler.Once(deltaTime.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.WorldWrites = world.ChangeTick() - startTick
	runtime.ReadMemStats(&report.MemStatsEnd)

	if err := root.Unmount(); err != nil {
		log.Fatalf("Failed to unmount tree: %v", err)
	}
	report.Leaked = world.Len()

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
