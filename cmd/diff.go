package cmd

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gecko-go/internal/diff"
	"github.com/masmgr/gecko-go/internal/output"
)

// DiffCmd returns the diff command.
func DiffCmd() *cli.Command {
	flags := append(commonFlags(), filterFlags()...)
	flags = append(flags,
		&cli.IntFlag{
			Name:    "context",
			Aliases: []string{"U"},
			Usage:   "Context lines around each change (default from config)",
		},
		&cli.BoolFlag{
			Name:  "legacy-fingerprint",
			Usage: "Fingerprint files by path instead of diff content",
		},
	)

	return &cli.Command{
		Name:      "diff",
		Aliases:   []string{"d"},
		Usage:     "Show the changes a commit introduced against its first parent",
		ArgsUsage: "<commit>",
		Flags:     flags,
		Action:    diffAction,
	}
}

func diffAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("diff requires a <commit>")
	}

	if c.IsSet("context") && c.Int("context") < 0 {
		return errors.New("context must be non-negative")
	}

	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		opts := diffOptions(ctx, c)
		res, err := diff.NewEngine(ctx.Repo, opts).Diff(c.Context, c.Args().First())
		if err != nil {
			return err
		}

		return ctx.Writer.WriteDiff(&output.DiffReport{
			RepoPath:    ctx.RepoPath,
			GeneratedAt: ctx.Now,
			Result:      res,
		}, ctx.Options)
	})
}

// diffOptions merges config with command-line overrides.
func diffOptions(ctx *CommandContext, c *cli.Context) diff.Options {
	opts := diff.Options{
		ContextLines:      ctx.Config.Diff.ContextLines,
		LegacyFingerprint: ctx.Config.Diff.LegacyFingerprint || c.Bool("legacy-fingerprint"),
		Include:           ctx.Config.Filters.Include,
		Exclude:           ctx.Config.Filters.Exclude,
	}
	if c.IsSet("context") {
		opts.ContextLines = c.Int("context")
	}
	return opts
}
