package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aldemarvin/extractor/internal/command/common"
	"github.com/aldemarvin/extractor/internal/core/model"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	flagExtraction = "extraction"
	flagOutput     = "output"
	flagOpen       = "open"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Render an extraction's pages as a PDF document",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     flagExtraction,
				Aliases:  []string{"e"},
				Usage:    "Identifier of the extraction",
				Required: true,
			},
			&cli.StringFlag{
				Name:    flagOutput,
				Aliases: []string{"o"},
				Usage:   "Destination directory (defaults to the configured export directory)",
			},
			&cli.BoolFlag{
				Name:  flagOpen,
				Usage: "Open the rendered document with the platform viewer",
			},
		},
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			manager, conf, err := common.GetAssemblyManager(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			defer manager.Close()

			data, filename, err := manager.Export(ctx, model.ExtractionID(cCtx.Int64(flagExtraction)))
			if err != nil {
				return errors.WithStack(err)
			}

			dir := cCtx.String(flagOutput)
			if dir == "" {
				dir = conf.Export.Dir
			}

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return errors.Wrapf(err, "could not create export directory '%s'", dir)
			}

			path := filepath.Join(dir, filename)

			if err := os.WriteFile(path, data, 0o644); err != nil {
				return errors.Wrapf(err, "could not write export file '%s'", path)
			}

			fmt.Fprintf(cCtx.App.Writer, "Exported to %s\n", path)

			open := conf.Export.AutoOpen
			if cCtx.IsSet(flagOpen) {
				open = cCtx.Bool(flagOpen)
			}

			if open {
				if err := manager.OpenExport(path); err != nil {
					return errors.Wrap(err, "could not open exported document")
				}
			}

			return nil
		},
	}
}
