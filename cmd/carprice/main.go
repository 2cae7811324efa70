// carprice serves the car price form and offers one-shot estimates and
// catalog maintenance from the command line.
//
// Usage:
//
//	carprice serve
//	carprice predict --year 2015 --mileage "20 kmpl" ... --brand Maruti
//	carprice brands
//	carprice catalog import --dataset Cardetails.csv --version 2024-01 --yaml data/brands.yaml
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	app := &cli.App{
		Name:    "carprice",
		Usage:   "Used car price estimates from a pre-trained regression model",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "Path to config file",
				EnvVars: []string{"CARPRICE_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			predictCommand(),
			brandsCommand(),
			catalogCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
