// swatch - dominant colour extraction
//
// swatch prints the most frequent colours of an image by quantising it with
// ImageMagick, falling back to an ffmpeg still frame for inputs ImageMagick
// cannot read.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/carlmjohnson/exitcode"

	"github.com/jmylchreest/swatch/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.Execute(ctx)
	stop()
	exitcode.Exit(err)
}
