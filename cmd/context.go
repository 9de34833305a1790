package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gecko-go/config"
	"github.com/masmgr/gecko-go/internal/git"
	"github.com/masmgr/gecko-go/internal/output"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across the browsing commands.
type CommandContext struct {
	Config   *config.Config
	Repo     *git.Repository
	RepoPath string
	Writer   output.Writer
	Options  output.OutputOptions
	Now      time.Time
}

// NewCommandContext creates a context from CLI flags.
// It loads configuration, parses the output flags and opens the repository.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	opts, err := OutputOptions(c)
	if err != nil {
		return nil, err
	}

	repoPath := c.String("repo")
	repo, err := git.Open(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	return &CommandContext{
		Config:   cfg,
		Repo:     repo,
		RepoPath: repoPath,
		Writer:   output.NewWriter(opts.Format),
		Options:  opts,
		Now:      time.Now(),
	}, nil
}

// executeWithContext builds the command context and runs fn with it.
func executeWithContext(c *cli.Context, fn func(ctx *CommandContext, c *cli.Context) error) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	return fn(ctx, c)
}

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context) (output.OutputOptions, error) {
	format, err := getOutputFormat(c.String("format"))
	if err != nil {
		return output.OutputOptions{}, err
	}
	return output.OutputOptions{
		Format:     format,
		OutputPath: c.String("output"),
	}, nil
}
