package main

import (
	"context"
	"os"

	"taskboard/utils"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
)

func main() {
	utils.LoadEnvFile()

	c := &cli{
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		isTerminal: func() bool {
			fd := os.Stdin.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
	}
	if err := run(context.Background(), c, os.Args[1:]); err != nil {
		log.Error().Err(err).Msg("taskctl failed")
		os.Exit(1)
	}
}
