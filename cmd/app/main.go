package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/mise/internal"
	"github.com/starford/mise/internal/menuscan"
	pkgconfig "github.com/starford/mise/pkg/config"
)

// loadConfig reads the config file named by the root --config flag, on top
// of defaults.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	path := cmd.String("config")
	if _, err := os.Stat(path); err == nil {
		if err := pkgconfig.Load(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	return cfg, nil
}

// withApp wires the runtime and hands it to fn, closing it afterwards.
func withApp(cmd *cli.Command, fn func(*internal.App) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	app, err := internal.Setup(cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}

func importAction(ctx context.Context, cmd *cli.Command) error {
	return withApp(cmd, func(app *internal.App) error {
		files := cmd.Args().Slice()
		if len(files) == 0 {
			res, err := app.Service.ImportAll(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("imported %d files (%d recipes), skipped %d, failed %d\n",
				res.Imported, res.Recipes, res.Skipped, len(res.Failed))
			return nil
		}
		for _, f := range files {
			res, err := app.Service.ImportFile(ctx, f)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d recipes\n", res.Path, len(res.Recipes))
		}
		return nil
	})
}

func exportAction(ctx context.Context, cmd *cli.Command) error {
	return withApp(cmd, func(app *internal.App) error {
		out, err := app.Service.Export(ctx, cmd.String("format"))
		if err != nil {
			return err
		}
		if dest := cmd.String("out"); dest != "" {
			return os.WriteFile(dest, out, 0o644)
		}
		_, err = os.Stdout.Write(out)
		return err
	})
}

func menuAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("usage: menu <file>")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(cmd.Args().First())
	if err != nil {
		return err
	}

	opts := cfg.Menu.Options()
	if cmd.Bool("no-auto-categorize") {
		opts.AutoCategorize = false
	}
	items := menuscan.New(opts).Parse(string(data))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

func scaleAction(ctx context.Context, cmd *cli.Command) error {
	return withApp(cmd, func(app *internal.App) error {
		f, err := app.Service.Formula(ctx, cmd.String("recipe"), cmd.String("base"))
		if err != nil {
			return err
		}
		if mode := cmd.String("mode"); mode != "" {
			scaled := f.Scale(mode, cmd.Float("value"), cmd.String("unit"))
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(scaled)
		}
		out, err := f.Export(cmd.String("format"))
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	})
}

func searchAction(ctx context.Context, cmd *cli.Command) error {
	return withApp(cmd, func(app *internal.App) error {
		if cmd.Args().Len() == 0 {
			return fmt.Errorf("usage: search <query>")
		}
		results, err := app.Service.Search(ctx, cmd.Args().First(), int(cmd.Int("limit")))
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Printf("%s\t%s\t%s\n", r.ID, r.Title, r.Snippet)
		}
		return nil
	})
}

func listAction(ctx context.Context, cmd *cli.Command) error {
	return withApp(cmd, func(app *internal.App) error {
		summaries, total, err := app.Service.ListRecipes(ctx,
			int(cmd.Int("limit")), int(cmd.Int("offset")),
			cmd.String("category"), cmd.String("sort"))
		if err != nil {
			return err
		}
		for _, s := range summaries {
			fmt.Printf("%s\t%-30s\t%s\t%s\n", s.ID, s.Title, s.Category, s.Path)
		}
		fmt.Printf("%d of %d recipes\n", len(summaries), total)
		return nil
	})
}

func watchAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.Run(ctx, internal.WithConfig(cfg))
}

func main() {
	cmd := &cli.Command{
		Name:  "mise",
		Usage: "Recipe and menu text toolkit: import, normalize, search, scale",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   "config/config.yaml",
				Sources: cli.EnvVars("MISE_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import pantry files into the library (all changed files when no arguments)",
				ArgsUsage: "[file ...]",
				Action:    importAction,
			},
			{
				Name:   "export",
				Usage:  "Export every library recipe",
				Action: exportAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "json", Usage: "json, csv, or txt"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file (stdout when empty)"},
				},
			},
			{
				Name:      "menu",
				Usage:     "Parse a free-form menu text file into structured items",
				ArgsUsage: "<file>",
				Action:    menuAction,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "no-auto-categorize", Usage: "Leave unheaded items uncategorized"},
				},
			},
			{
				Name:   "scale",
				Usage:  "Build and scale a baker's formula from a stored recipe",
				Action: scaleAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "recipe", Aliases: []string{"r"}, Required: true, Usage: "Recipe id"},
					&cli.StringFlag{Name: "base", Aliases: []string{"b"}, Usage: "Base ingredient (100%)"},
					&cli.StringFlag{Name: "mode", Usage: "factor, target_amount, batch_count, or percentage"},
					&cli.FloatFlag{Name: "value", Usage: "Scaling value for --mode"},
					&cli.StringFlag{Name: "unit", Usage: "Target unit for scaled amounts"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "readable", Usage: "Formula output: readable, json, or csv"},
				},
			},
			{
				Name:      "search",
				Usage:     "Full-text search across the library",
				ArgsUsage: "<query>",
				Action:    searchAction,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20},
				},
			},
			{
				Name:   "list",
				Usage:  "List library recipes",
				Action: listAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Usage: "Filter by category"},
					&cli.StringFlag{Name: "sort", Value: "updated", Usage: "updated or title"},
					&cli.IntFlag{Name: "limit", Value: 50},
					&cli.IntFlag{Name: "offset"},
				},
			},
			{
				Name:   "watch",
				Usage:  "Watch the pantry and keep the library in sync",
				Action: watchAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
