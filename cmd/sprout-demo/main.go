// Command sprout-demo mounts a YAML scene as an element tree and prints the
// resulting display hierarchy. With -watch it restyles or remounts the scene
// whenever the file changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/plus3/sprout/internal/scene"
	"github.com/plus3/sprout/ui"
)

func main() {
	scenePath := flag.String("scene", "", "Path to the YAML scene to mount.")
	watch := flag.Bool("watch", false, "Reload the scene whenever the file changes.")
	verbose := flag.Bool("v", false, "Log lifecycle diagnostics to stderr.")
	flag.Parse()

	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "sprout-demo: -scene is required")
		flag.Usage()
		os.Exit(2)
	}

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(os.Stderr, "sprout-demo: ", log.LstdFlags)
	}

	s, err := scene.Load(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	mounted, err := scene.Mount(ui.NewWorld(), s, logger)
	if err != nil {
		log.Fatalf("Failed to mount scene: %v", err)
	}
	mounted.Print(os.Stdout)

	if *watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		log.Printf("Watching %s for changes...", *scenePath)
		err := scene.Watch(ctx, *scenePath, func() {
			s, err := scene.Load(*scenePath)
			if err != nil {
				log.Printf("Reload failed: %v", err)
				return
			}
			if err := mounted.Apply(s); err != nil {
				log.Printf("Reload failed: %v", err)
				return
			}
			fmt.Println()
			mounted.Print(os.Stdout)
		})
		if err != nil {
			log.Fatalf("Watch failed: %v", err)
		}
	}

	if err := mounted.Close(); err != nil {
		log.Fatalf("Failed to unmount scene: %v", err)
	}
}
