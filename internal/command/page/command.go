package page

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aldemarvin/extractor/internal/command/common"
	"github.com/aldemarvin/extractor/internal/core/model"
	"github.com/aldemarvin/extractor/internal/core/port"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	flagExtraction = "extraction"
	flagPage       = "page"
	flagImage      = "image"
	flagMerged     = "merged"
	flagOriginal   = "original"
	flagTranslated = "translated"
	flagOrder      = "order"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "page",
		Usage: "Manage the pages of an extraction",
		Subcommands: []*cli.Command{
			captureCommand(),
			translateCommand(),
			showCommand(),
			editCommand(),
			reorderCommand(),
			deleteCommand(),
		},
	}
}

func captureCommand() *cli.Command {
	return &cli.Command{
		Name:  "capture",
		Usage: "Run OCR on an image and append the result as a new page",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     flagExtraction,
				Aliases:  []string{"e"},
				Usage:    "Identifier of the extraction",
				Required: true,
			},
			&cli.StringFlag{
				Name:     flagImage,
				Aliases:  []string{"i"},
				Usage:    "Path to the image file",
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

			imagePath := cCtx.String(flagImage)

			image, err := os.ReadFile(imagePath)
			if err != nil {
				return errors.Wrapf(err, "could not read image file '%s'", imagePath)
			}

			page, err := manager.CapturePage(ctx, model.ExtractionID(cCtx.Int64(flagExtraction)), image)
			if err != nil {
				return errors.WithStack(err)
			}

			fmt.Fprintf(cCtx.App.Writer, "Captured page %d (#%d), %d characters recognized\n", page.Number, page.ID, len(page.OriginalText))

			return nil
		},
	}
}

func translateCommand() *cli.Command {
	return &cli.Command{
		Name:  "translate",
		Usage: "Translate a page's original text",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     flagPage,
				Aliases:  []string{"p"},
				Usage:    "Identifier of the page",
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

			page, err := manager.TranslatePage(ctx, model.PageID(cCtx.Int64(flagPage)))
			if err != nil {
				return errors.WithStack(err)
			}

			fmt.Fprintf(cCtx.App.Writer, "Translated page %d (#%d), %d characters\n", page.Number, page.ID, len(page.TranslatedText))

			return nil
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print a page's text",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     flagPage,
				Aliases:  []string{"p"},
				Usage:    "Identifier of the page",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  flagMerged,
				Usage: "Print the bilingual merged view instead of the raw texts",
			},
		},
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			manager, _, err := common.GetAssemblyManager(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			defer manager.Close()

			pageID := model.PageID(cCtx.Int64(flagPage))

			if cCtx.Bool(flagMerged) {
				merged, err := manager.MergedPage(ctx, pageID)
				if err != nil {
					return errors.WithStack(err)
				}

				fmt.Fprintln(cCtx.App.Writer, merged)

				return nil
			}

			page, err := manager.GetPage(ctx, pageID)
			if err != nil {
				return errors.WithStack(err)
			}

			fmt.Fprintf(cCtx.App.Writer, "Page %d (#%d) of extraction #%d\n\n", page.Number, page.ID, page.ExtractionID)
			fmt.Fprintf(cCtx.App.Writer, "--- Original ---\n%s\n", page.OriginalText)

			if page.TranslatedText != "" {
				fmt.Fprintf(cCtx.App.Writer, "\n--- Translated ---\n%s\n", page.TranslatedText)
			}

			return nil
		},
	}
}

func editCommand() *cli.Command {
	return &cli.Command{
		Name:  "edit",
		Usage: "Replace a page's original or translated text",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     flagPage,
				Aliases:  []string{"p"},
				Usage:    "Identifier of the page",
				Required: true,
			},
			&cli.StringFlag{
				Name:  flagOriginal,
				Usage: "New original text, or a path prefixed with '@' to read it from a file",
			},
			&cli.StringFlag{
				Name:  flagTranslated,
				Usage: "New translated text, or a path prefixed with '@' to read it from a file",
			},
		},
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			if !cCtx.IsSet(flagOriginal) && !cCtx.IsSet(flagTranslated) {
				return errors.New("at least one of --original or --translated is required")
			}

			manager, _, err := common.GetAssemblyManager(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			defer manager.Close()

			var updates port.PageUpdates

			if cCtx.IsSet(flagOriginal) {
				value, err := resolveText(cCtx.String(flagOriginal))
				if err != nil {
					return errors.WithStack(err)
				}
				updates.OriginalText = &value
			}

			if cCtx.IsSet(flagTranslated) {
				value, err := resolveText(cCtx.String(flagTranslated))
				if err != nil {
					return errors.WithStack(err)
				}
				updates.TranslatedText = &value
			}

			page, err := manager.UpdatePage(ctx, model.PageID(cCtx.Int64(flagPage)), updates)
			if err != nil {
				return errors.WithStack(err)
			}

			fmt.Fprintf(cCtx.App.Writer, "Updated page %d (#%d)\n", page.Number, page.ID)

			return nil
		},
	}
}

func reorderCommand() *cli.Command {
	return &cli.Command{
		Name:  "reorder",
		Usage: "Renumber an extraction's pages following the given identifier order",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     flagExtraction,
				Aliases:  []string{"e"},
				Usage:    "Identifier of the extraction",
				Required: true,
			},
			&cli.StringFlag{
				Name:     flagOrder,
				Usage:    "Comma-separated page identifiers in their new order (e.g. '3,1,2')",
				Required: true,
			},
		},
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			order, err := parseOrder(cCtx.String(flagOrder))
			if err != nil {
				return errors.WithStack(err)
			}

			manager, _, err := common.GetAssemblyManager(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			defer manager.Close()

			if err := manager.ReorderPages(ctx, model.ExtractionID(cCtx.Int64(flagExtraction)), order); err != nil {
				return errors.WithStack(err)
			}

			fmt.Fprintf(cCtx.App.Writer, "Reordered %d pages\n", len(order))

			return nil
		},
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Delete a page",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     flagPage,
				Aliases:  []string{"p"},
				Usage:    "Identifier of the page",
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

			pageID := model.PageID(cCtx.Int64(flagPage))

			if err := manager.DeletePage(ctx, pageID); err != nil {
				return errors.WithStack(err)
			}

			fmt.Fprintf(cCtx.App.Writer, "Deleted page #%d\n", pageID)

			return nil
		},
	}
}

// resolveText returns the raw value, or the content of the referenced file
// when the value starts with '@'.
func resolveText(value string) (string, error) {
	if !strings.HasPrefix(value, "@") {
		return value, nil
	}

	path := strings.TrimPrefix(value, "@")

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "could not read text file '%s'", path)
	}

	return string(data), nil
}

func parseOrder(raw string) ([]model.PageID, error) {
	parts := strings.Split(raw, ",")
	order := make([]model.PageID, 0, len(parts))

	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "could not parse page identifier '%s'", part)
		}

		order = append(order, model.PageID(id))
	}

	return order, nil
}
