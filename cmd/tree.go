package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gecko-go/internal/blob"
	"github.com/masmgr/gecko-go/internal/output"
	"github.com/masmgr/gecko-go/internal/tree"
)

// TreeCmd returns the tree command.
func TreeCmd() *cli.Command {
	return &cli.Command{
		Name:      "tree",
		Aliases:   []string{"t"},
		Usage:     "List a directory at a ref (defaults to HEAD and the root)",
		ArgsUsage: "[ref] [path]",
		Flags:     commonFlags(),
		Action:    treeAction,
	}
}

func treeAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		ref := c.Args().Get(0)
		res, err := tree.NewNavigator(ctx.Repo).Browse(ref, c.Args().Get(1))
		if err != nil {
			return err
		}
		if ref == "" {
			ref = "HEAD"
		}

		// A path naming a file shows the file.
		if res.IsBlob() {
			return writeBlob(ctx, ref, res, false)
		}

		return ctx.Writer.WriteListing(&output.ListingReport{
			RepoPath:    ctx.RepoPath,
			Ref:         ref,
			GeneratedAt: ctx.Now,
			Result:      res,
		}, ctx.Options)
	})
}

func writeBlob(ctx *CommandContext, ref string, res *tree.Result, raw bool) error {
	rendered, err := blob.Render(res.Blob, res.BlobName, raw)
	if err != nil {
		return err
	}
	return ctx.Writer.WriteBlob(&output.BlobReport{
		RepoPath:    ctx.RepoPath,
		Ref:         ref,
		GeneratedAt: ctx.Now,
		Result:      res,
		Rendered:    rendered,
	}, ctx.Options)
}
