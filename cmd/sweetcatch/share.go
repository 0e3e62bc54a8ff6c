package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweet-catch/internal/config"
	"github.com/vovakirdan/sweet-catch/internal/history"
	"github.com/vovakirdan/sweet-catch/internal/share"
)

var (
	flagShareApp    bool
	flagShareStdout bool
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Share the latest award",
	Long: `Copy a message about your last round to the clipboard. With --app the
message recommends the game instead.

Examples:
  sweetcatch share
  sweetcatch share --app
  sweetcatch share --stdout`,
	Args: cobra.NoArgs,
	Run:  runShare,
}

func init() {
	shareCmd.Flags().BoolVar(&flagShareApp, "app", false, "Share the app recommendation")
	shareCmd.Flags().BoolVar(&flagShareStdout, "stdout", false, "Print the message instead of copying it")
}

// shareMessage picks the message to share. It reports false when there is
// no round to talk about.
func shareMessage(cfg config.Config, hist *history.Store, app bool) (share.Message, bool) {
	if app {
		return share.AppMessage(cfg.Share.AppTitle, cfg.Share.AppMessage, cfg.Share.AppURL), true
	}
	profile := hist.Profile()
	if profile.LevelsTotal() == 0 {
		return share.Message{}, false
	}
	award := profile.Award(0)
	return share.AwardMessage(cfg.Share.AwardTitle, award.Round.Level, award.Round.Points, award.Tier.Title), true
}

func runShare(_ *cobra.Command, _ []string) {
	cfg, hist, logger, done := setup()
	defer done()

	msg, ok := shareMessage(cfg, hist, flagShareApp)
	if !ok {
		fmt.Println("No rounds recorded yet. Play a round first, or use --app.")
		return
	}

	var sharer share.Sharer = share.NewWriter(os.Stdout)
	if !flagShareStdout {
		clip := share.NewClipboard()
		if !clip.Available() {
			logger.Warn("clipboard unavailable, printing instead")
		} else {
			sharer = clip
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if !share.Send(ctx, sharer, msg, logger) {
		fmt.Println("Could not share the message.")
		return
	}
	if _, toClipboard := sharer.(*share.Clipboard); toClipboard {
		fmt.Println("Copied to clipboard:")
		fmt.Println()
		fmt.Println(msg.Body())
	}
}
