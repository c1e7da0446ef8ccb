package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

func load(c *cli.Context, path string) (vocabulary, error) {
	l, err := parseDescriptor(c.String("descriptor"))
	if err != nil {
		return nil, err
	}
	store, name, err := resolve(c.Context, c, path)
	if err != nil {
		return nil, err
	}
	return l.load(c.Context, store, name, options(c))
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "print the header and shape of a vocabulary",
		ArgsUsage: "<path>",
		Flags:     []cli.Flag{descriptorFlag()},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("info expects exactly one path", 2)
			}
			voc, err := load(c, c.Args().First())
			if err != nil {
				return err
			}

			h := voc.Header()
			s := voc.Stats()
			w := c.App.Writer

			fmt.Fprintf(w, "branching factor: %d\n", h.BranchingFactor)
			fmt.Fprintf(w, "depth:            %d\n", h.Depth)
			fmt.Fprintf(w, "scoring:          %s\n", h.Scoring)
			fmt.Fprintf(w, "weighting:        %s\n", h.Weighting)
			fmt.Fprintf(w, "nodes:            %d\n", s.Nodes)
			fmt.Fprintf(w, "words:            %d\n", s.Words)
			fmt.Fprintf(w, "max depth:        %d\n", s.MaxDepth)
			fmt.Fprintf(w, "max fan-out:      %d\n", s.MaxFanout)
			fmt.Fprintf(w, "fill:             %.4f\n", s.Fill())

			levels := make([]string, len(s.LevelNodes))
			for i, n := range s.LevelNodes {
				levels[i] = fmt.Sprint(n)
			}
			fmt.Fprintf(w, "nodes per level:  %s\n", strings.Join(levels, " "))
			return nil
		},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "load a vocabulary and check its tree invariants",
		ArgsUsage: "<path>",
		Flags:     []cli.Flag{descriptorFlag()},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("validate expects exactly one path", 2)
			}
			voc, err := load(c, c.Args().First())
			if err != nil {
				return err
			}

			if err := voc.Validate(); err != nil {
				var joined interface{ Unwrap() []error }
				if errors.As(err, &joined) {
					for _, e := range joined.Unwrap() {
						fmt.Fprintln(c.App.Writer, e)
					}
				} else {
					fmt.Fprintln(c.App.Writer, err)
				}
				return cli.Exit("vocabulary is invalid", 1)
			}

			fmt.Fprintln(c.App.Writer, "ok")
			return nil
		},
	}
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "rewrite a vocabulary, recompressing it according to the destination suffix",
		ArgsUsage: "<src> <dst|->",
		Flags: []cli.Flag{
			descriptorFlag(),
			&cli.BoolFlag{
				Name:  "validate",
				Usage: "refuse to write a vocabulary that fails validation",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("convert expects a source and a destination path", 2)
			}
			voc, err := load(c, c.Args().Get(0))
			if err != nil {
				return err
			}
			if c.Bool("validate") {
				if err := voc.Validate(); err != nil {
					return fmt.Errorf("source is invalid: %w", err)
				}
			}

			dst := c.Args().Get(1)
			if dst == "-" {
				return voc.Encode(c.Context, c.App.Writer)
			}

			store, name, err := resolve(c.Context, c, dst)
			if err != nil {
				return err
			}
			return voc.Save(c.Context, store, name)
		},
	}
}
