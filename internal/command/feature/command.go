package feature

import (
	"fmt"
	"io"

	"github.com/bornholm/producthub/internal/command/common"
	"github.com/bornholm/producthub/internal/core/query"
	"github.com/bornholm/producthub/pkg/client"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "features",
		Usage: "Manage product features",
		Subcommands: []*cli.Command{
			listCommand(),
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List features",
		Flags: common.WithCommonFlags(
			&cli.StringFlag{Name: "status", Usage: "Filter by status"},
			&cli.StringFlag{Name: "category", Usage: "Filter by category"},
			&cli.StringFlag{Name: "priority", Usage: "Filter by priority"},
			&cli.StringFlag{Name: "assignee", Usage: "Filter by assignee"},
			&cli.StringFlag{Name: "search", Usage: "Search in titles and descriptions"},
			&cli.StringFlag{Name: "sort-by", Value: query.DefaultSortBy, Usage: "Sort field"},
			&cli.StringFlag{Name: "sort-order", Value: string(query.DefaultSortOrder), Usage: "Sort order (asc or desc)"},
			&cli.IntFlag{Name: "page", Value: query.DefaultPage, Usage: "Page number"},
			&cli.IntFlag{Name: "limit", Value: query.DefaultLimit, Usage: "Page size"},
		),
		Action: func(ctx *cli.Context) error {
			c, err := common.GetClient(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			page, err := c.ListFeatures(ctx.Context,
				client.WithListFilter("status", ctx.String("status")),
				client.WithListFilter("category", ctx.String("category")),
				client.WithListFilter("priority", ctx.String("priority")),
				client.WithListFilter("assignee", ctx.String("assignee")),
				client.WithListSearch(ctx.String("search")),
				client.WithListSort(ctx.String("sort-by"), query.ParseOrder(ctx.String("sort-order"))),
				client.WithListPage(ctx.Int("page"), ctx.Int("limit")),
			)
			if err != nil {
				return errors.Wrap(err, "could not list features")
			}

			return common.Print(ctx, page, func(w io.Writer) error {
				fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tVOTES\tASSIGNEE\tUPDATED")
				for _, f := range page.Data {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
						f.ID, f.Title, f.Status, f.Priority,
						humanize.Comma(int64(f.Votes)), f.AssignedTo, humanize.Time(f.UpdatedAt),
					)
				}
				fmt.Fprintf(w, "\npage %d/%d, %s features\n", page.Page, page.TotalPages, humanize.Comma(int64(page.TotalCount)))
				return nil
			})
		},
	}
}
