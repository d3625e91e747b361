package extraction

import (
	"fmt"
	"text/tabwriter"

	"github.com/aldemarvin/extractor/internal/command/common"
	"github.com/aldemarvin/extractor/internal/core/model"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	flagID      = "id"
	flagName    = "name"
	flagVersion = "version"
	flagType    = "type"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "extraction",
		Usage: "Manage extractions",
		Subcommands: []*cli.Command{
			createCommand(),
			listCommand(),
			showCommand(),
			deleteCommand(),
		},
	}
}

func createCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a new extraction",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     flagName,
				Aliases:  []string{"n"},
				Usage:    "Name of the document",
				Required: true,
			},
			&cli.StringFlag{
				Name:     flagVersion,
				Usage:    "Version or edition of the document",
				Required: true,
			},
			&cli.StringFlag{
				Name:     flagType,
				Aliases:  []string{"t"},
				Usage:    "Type of the document (e.g. 'book', 'manual')",
				Required: true,
			},
		},
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			manager, _, err := common.GetAssemblyManager(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			defer manager.Close()

			extraction, err := manager.CreateExtraction(ctx, cCtx.String(flagName), cCtx.String(flagVersion), cCtx.String(flagType))
			if err != nil {
				return errors.WithStack(err)
			}

			fmt.Fprintf(cCtx.App.Writer, "Created extraction #%d '%s' (version '%s', type '%s')\n", extraction.ID, extraction.Name, extraction.Version, extraction.DocType)

			return nil
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List all extractions",
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			manager, _, err := common.GetAssemblyManager(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			defer manager.Close()

			extractions, err := manager.QueryExtractions(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			w := tabwriter.NewWriter(cCtx.App.Writer, 0, 4, 2, ' ', 0)

			fmt.Fprintln(w, "ID\tNAME\tVERSION\tTYPE\tPAGES\tCREATED")
			for _, e := range extractions {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n", e.ID, e.Name, e.Version, e.DocType, e.PageCount, humanize.Time(e.CreatedAt))
			}

			return errors.WithStack(w.Flush())
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show an extraction and its pages",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     flagID,
				Usage:    "Identifier of the extraction",
				Required: true,
			},
		},
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			manager, _, err := common.GetAssemblyManager(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			defer manager.Close()

			id := model.ExtractionID(cCtx.Int64(flagID))

			extraction, err := manager.GetExtraction(ctx, id)
			if err != nil {
				return errors.WithStack(err)
			}

			pages, err := manager.GetPages(ctx, id)
			if err != nil {
				return errors.WithStack(err)
			}

			fmt.Fprintf(cCtx.App.Writer, "Extraction #%d\n", extraction.ID)
			fmt.Fprintf(cCtx.App.Writer, "  Name:    %s\n", extraction.Name)
			fmt.Fprintf(cCtx.App.Writer, "  Version: %s\n", extraction.Version)
			fmt.Fprintf(cCtx.App.Writer, "  Type:    %s\n", extraction.DocType)
			fmt.Fprintf(cCtx.App.Writer, "  Pages:   %d\n", extraction.PageCount)
			fmt.Fprintf(cCtx.App.Writer, "  Created: %s\n", humanize.Time(extraction.CreatedAt))

			if len(pages) == 0 {
				return nil
			}

			w := tabwriter.NewWriter(cCtx.App.Writer, 0, 4, 2, ' ', 0)

			fmt.Fprintln(w, "\nNUMBER\tID\tORIGINAL\tTRANSLATED")
			for _, p := range pages {
				translated := "no"
				if p.TranslatedText != "" {
					translated = "yes"
				}
				fmt.Fprintf(w, "%d\t%d\t%d chars\t%s\n", p.Number, p.ID, len(p.OriginalText), translated)
			}

			return errors.WithStack(w.Flush())
		},
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Delete an extraction and all its pages",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     flagID,
				Usage:    "Identifier of the extraction",
				Required: true,
			},
		},
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			manager, _, err := common.GetAssemblyManager(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			defer manager.Close()

			id := model.ExtractionID(cCtx.Int64(flagID))

			if err := manager.DeleteExtraction(ctx, id); err != nil {
				return errors.WithStack(err)
			}

			fmt.Fprintf(cCtx.App.Writer, "Deleted extraction #%d\n", id)

			return nil
		},
	}
}
