package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"

	"learngame/pkg/config"
	"learngame/pkg/diff"
	"learngame/pkg/document"
	"learngame/pkg/inference"
	"learngame/pkg/learning"
	"learngame/pkg/schema"
	"learngame/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:  "learngame",
		Usage: "Build study materials from a document",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   config.DefaultLogLevel,
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			level, err := log.ParseLevel(c.String("log-level"))
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "build",
				Usage: "Extract entities from a PDF (or load a saved store) and build all materials",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "pdf", Usage: "PDF document to read"},
					&cli.StringFlag{Name: "store", Usage: "Entity store JSON to load instead of extracting"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write the materials JSON to this file"},
					&cli.StringFlag{Name: "save-store", Usage: "Write the extracted entity store to this file"},
					&cli.BoolFlag{Name: "offline", Usage: "Do not call any model, use the fallbacks"},
				},
				Action: func(c *cli.Context) error {
					return build(c.Context, buildOptions{
						pdf:       c.String("pdf"),
						store:     c.String("store"),
						out:       c.String("out"),
						saveStore: c.String("save-store"),
						offline:   c.Bool("offline"),
					})
				},
			},
			{
				Name:  "sample",
				Usage: "Build materials for the built-in mythology sample without a model",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write the materials JSON to this file"},
				},
				Action: func(c *cli.Context) error {
					m := learning.NewEngine(learning.SampleStore(), learning.SampleText).CreateAllMaterials(c.Context)
					return report(m, c.String("out"))
				},
			},
			{
				Name:      "diff",
				Usage:     "Compare two saved entity stores",
				ArgsUsage: "OLD.json NEW.json",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "all", Usage: "Also list unchanged entities"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return cli.Exit("diff needs exactly two store files", 2)
					}
					return compare(c.Args().Get(0), c.Args().Get(1), c.Bool("all"))
				},
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

type buildOptions struct {
	pdf, store, out, saveStore string
	offline                    bool
}

func build(ctx context.Context, opts buildOptions) error {
	if (opts.pdf == "") == (opts.store == "") {
		return errors.New("exactly one of --pdf or --store is required")
	}

	var inf inference.Inferencer
	cfg := config.Load()
	if !opts.offline {
		var err error
		if inf, err = inference.New(cfg.LLM); err != nil {
			return err
		}
		if inf == nil {
			log.Warn("no LLM API key set, using offline fallbacks")
		}
	}

	var (
		store schema.EntityStore
		text  string
		err   error
	)
	if opts.store != "" {
		store, err = utils.Load[schema.EntityStore](opts.store)
		if err != nil {
			return fmt.Errorf("loading store: %w", err)
		}
	} else {
		text, err = document.ExtractText(opts.pdf)
		if err != nil {
			return err
		}
		log.Info("read document", "path", opts.pdf, "preview", utils.LimitStr(text, 80))

		store, err = learning.ExtractEntities(ctx, inf, text)
		if err != nil {
			log.Warn("entity extraction failed, continuing with empty store", "error", err)
		}
	}
	store = store.Normalized()
	if opts.saveStore != "" {
		if err := utils.Save(opts.saveStore, store); err != nil {
			return fmt.Errorf("saving store: %w", err)
		}
	}

	m := learning.NewEngine(store, text,
		learning.WithInferencer(inf),
		learning.WithWorkers(cfg.DistractorWorkers),
	).CreateAllMaterials(ctx)
	return report(m, opts.out)
}

func report(m schema.Materials, out string) error {
	printSummary(os.Stdout, m)
	if out == "" {
		return nil
	}
	if err := utils.Save(out, m); err != nil {
		return fmt.Errorf("saving materials: %w", err)
	}
	log.Info("materials saved", "path", out)
	return nil
}

func compare(oldPath, newPath string, all bool) error {
	oldS, err := utils.Load[schema.EntityStore](oldPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", oldPath, err)
	}
	newS, err := utils.Load[schema.EntityStore](newPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", newPath, err)
	}

	d := diff.Stores(oldS, newS)
	if !d.Changed() && !all {
		fmt.Println("no changes")
		return nil
	}
	d.Print(os.Stdout, all)
	return nil
}
