package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gecko-go/internal/web"
)

// ServeCmd returns the serve command.
func ServeCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve every repository under a directory over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (default from config)",
			},
			&cli.StringFlag{
				Name:  "repos",
				Usage: "Directory holding the served repositories (default from config)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Maximum concurrent repository operations (default from config)",
			},
		},
		Action: serveAction,
	}
}

func serveAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if addr := c.String("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if repos := c.String("repos"); repos != "" {
		cfg.Server.ReposRoot = repos
	}
	if workers := c.Int("workers"); workers > 0 {
		cfg.Server.Workers = workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := configureLogger()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.NewServer(cfg, log).Run(ctx)
}

func configureLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if _, debug := os.LookupEnv("DEBUG"); debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
