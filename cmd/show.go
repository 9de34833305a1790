package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gecko-go/internal/tree"
)

// ShowCmd returns the show command.
func ShowCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "Write binary files as raw bytes instead of a stub",
		},
	)

	return &cli.Command{
		Name:      "show",
		Aliases:   []string{"s"},
		Usage:     "Render a file at a ref",
		ArgsUsage: "<ref> <path>",
		Flags:     flags,
		Action:    showAction,
	}
}

func showAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("show requires <ref> and <path>")
	}

	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		ref, path := c.Args().Get(0), c.Args().Get(1)
		res, err := tree.NewNavigator(ctx.Repo).Browse(ref, path)
		if err != nil {
			return err
		}
		if !res.IsBlob() {
			return fmt.Errorf("%s is a directory; use tree", res.Path)
		}
		return writeBlob(ctx, ref, res, c.Bool("raw"))
	})
}
