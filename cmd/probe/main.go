// Probe prints what the audio backend sees in a briefing file or URL.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/tflash/internal/errmsg"
	"github.com/llehouerou/tflash/internal/logging"
	"github.com/llehouerou/tflash/internal/player"
	"github.com/llehouerou/tflash/internal/ui/render"
)

func main() {
	logger := logging.NewWriter(os.Stderr)
	if len(os.Args) < 2 {
		logger.Fatal("usage: probe <file|url|placeholder:30s>...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	failed := 0
	for _, locator := range os.Args[1:] {
		info, err := player.Probe(ctx, locator)
		if err != nil {
			logger.Error(errmsg.FormatWith(errmsg.OpProbe, locator, err))
			failed++
			continue
		}
		fmt.Printf("%s\n", info.Locator)
		fmt.Printf("  format    %s, %s Hz, %d ch\n", info.Format, humanize.Comma(int64(info.SampleRate)), info.Channels)
		fmt.Printf("  duration  %s\n", render.Clock(info.Duration))
		if info.Title != "" {
			fmt.Printf("  title     %s\n", info.Title)
		}
		if info.Artist != "" || info.Album != "" {
			fmt.Printf("  source    %s / %s\n", info.Artist, info.Album)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}
