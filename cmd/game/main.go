package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tatianab/caveborn/internal/app"
	"github.com/tatianab/caveborn/internal/character"
	"github.com/tatianab/caveborn/internal/config"
	"github.com/tatianab/caveborn/internal/engine"
	"github.com/tatianab/caveborn/internal/models"
	"github.com/tatianab/caveborn/internal/tui"
)

func main() {
	// Not fatal: settings may come from the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "caveborn",
		Short: "A text adventure in a cave of skulls",
		Long: `Caveborn is a choice-driven text adventure. Pick a class, find the keys,
level up, beat the village chief and bring down the skull colossus.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Start a new game",
		RunE:  runPlay,
	}
	playCmd.Flags().String("class", "", "Start as rogue, warrior or mage instead of choosing in game")
	playCmd.Flags().Bool("plain", false, "Use a line console on stdin/stdout instead of the full-screen UI")

	transcriptsCmd := &cobra.Command{
		Use:   "transcripts",
		Short: "List transcripts of finished games",
		RunE:  runTranscripts,
	}

	rootCmd.AddCommand(playCmd, transcriptsCmd)
	return rootCmd
}

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfgPath, _ := cmd.Flags().GetString("config")
	className, _ := cmd.Flags().GetString("class")
	plain, _ := cmd.Flags().GetBool("plain")

	var class character.Class
	if className != "" {
		c, err := character.ParseClass(className)
		if err != nil {
			return err
		}
		class = c
	}

	a, err := app.New(ctx, app.Options{ConfigPath: cfgPath, LogToFile: !plain})
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	rec := a.NewRecorder()
	var pt *engine.Playthrough
	if plain {
		console := tui.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
		if class == "" {
			if class, err = console.ChooseClass(ctx); err != nil {
				return err
			}
		}
		pt, err = engine.Run(ctx, a.Director, console, class, rec.Observe)
	} else {
		pt, err = tui.Run(ctx, a.Director, tui.Options{Class: class, Observe: rec.Observe})
	}
	if path, serr := a.SaveTranscript(rec, pt); serr == nil && path != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Transcript saved to %s\n", path)
	}
	return err
}

func runTranscripts(cmd *cobra.Command, _ []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	list, err := models.ListTranscripts(cfg.Transcript.Dir)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No transcripts in %s\n", cfg.Transcript.Dir)
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCLASS\tSTATUS\tTURNS\tLEVEL\tENDED")
	for _, t := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			t.ID, t.Class, t.Status, t.Turns(), t.Player.Level, t.EndedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
