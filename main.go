package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tatianab/caveborn/internal/app"
	"github.com/tatianab/caveborn/internal/tui"
)

// Quick launcher: default config, full-screen UI, class chosen in game.
func main() {
	ctx := context.Background()
	a, err := app.New(ctx, app.Options{LogToFile: true})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	rec := a.NewRecorder()
	pt, err := tui.Run(ctx, a.Director, tui.Options{Observe: rec.Observe})
	if _, serr := a.SaveTranscript(rec, pt); serr != nil {
		fmt.Printf("Error saving transcript: %v\n", serr)
	}
	a.Close(ctx)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
