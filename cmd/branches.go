package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gecko-go/internal/output"
)

// BranchesCmd returns the branches command.
func BranchesCmd() *cli.Command {
	return &cli.Command{
		Name:    "branches",
		Aliases: []string{"b"},
		Usage:   "List local and remote branches",
		Flags:   commonFlags(),
		Action:  branchesAction,
	}
}

func branchesAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		branches, err := ctx.Repo.Branches()
		if err != nil {
			return err
		}
		return ctx.Writer.WriteBranches(&output.BranchReport{
			RepoPath: ctx.RepoPath,
			Branches: branches,
		}, ctx.Options)
	})
}
