package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"os"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  appID,
		Usage: "single-operator point of sale",
		Commands: []*cli.Command{
			productCommand(),
			sellCommand(),
			reportCommand(),
			serveCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
