package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gecko-go/internal/history"
	"github.com/masmgr/gecko-go/internal/output"
)

// LogCmd returns the log command.
func LogCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:  "from",
			Usage: "Continue after this commit id (the previous page's cursor)",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "Number of commits per page (default from config)",
		},
	)

	return &cli.Command{
		Name:      "log",
		Aliases:   []string{"l"},
		Usage:     "Show one page of commit history",
		ArgsUsage: "[ref]",
		Flags:     flags,
		Action:    logAction,
	}
}

func logAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		size := ctx.Config.History.PageSize
		if limit := c.Int("limit"); limit > 0 {
			size = limit
		}

		ref := c.Args().First()
		page, err := history.NewPager(ctx.Repo, ctx.Config.History.MaxPageSize).Page(history.Request{
			Ref:      ref,
			Cursor:   c.String("from"),
			PageSize: size,
		})
		if err != nil {
			return err
		}

		return ctx.Writer.WriteHistory(&output.HistoryReport{
			RepoPath:    ctx.RepoPath,
			Ref:         ref,
			GeneratedAt: ctx.Now,
			Page:        page,
		}, ctx.Options)
	})
}
