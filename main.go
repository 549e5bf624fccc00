package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/leonardinius/golox/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cmd.NewLoxApp().MainContext(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
