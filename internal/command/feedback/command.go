package feedback

import (
	"fmt"
	"io"
	"strconv"

	"github.com/bornholm/producthub/internal/command/common"
	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/query"
	"github.com/bornholm/producthub/pkg/client"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "feedback",
		Usage: "Manage customer feedback",
		Subcommands: []*cli.Command{
			listCommand(),
			voteCommand(),
			statsCommand(),
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List feedback",
		Flags: common.WithCommonFlags(
			&cli.StringFlag{Name: "status", Usage: "Filter by status"},
			&cli.StringFlag{Name: "category", Usage: "Filter by category"},
			&cli.StringFlag{Name: "priority", Usage: "Filter by priority"},
			&cli.StringFlag{Name: "source", Usage: "Filter by source"},
			&cli.StringFlag{Name: "search", Usage: "Search in titles, descriptions and customers"},
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

			page, err := c.ListFeedback(ctx.Context,
				client.WithListFilter("status", ctx.String("status")),
				client.WithListFilter("category", ctx.String("category")),
				client.WithListFilter("priority", ctx.String("priority")),
				client.WithListFilter("source", ctx.String("source")),
				client.WithListSearch(ctx.String("search")),
				client.WithListSort(ctx.String("sort-by"), query.ParseOrder(ctx.String("sort-order"))),
				client.WithListPage(ctx.Int("page"), ctx.Int("limit")),
			)
			if err != nil {
				return errors.Wrap(err, "could not list feedback")
			}

			return common.Print(ctx, page, func(w io.Writer) error {
				fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tVOTES\tSOURCE\tCREATED")
				for _, f := range page.Data {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
						f.ID, f.Title, f.Status, f.Priority,
						humanize.Comma(int64(f.Votes)), f.Source, humanize.Time(f.CreatedAt),
					)
				}
				fmt.Fprintf(w, "\npage %d/%d, %s feedback\n", page.Page, page.TotalPages, humanize.Comma(int64(page.TotalCount)))
				return nil
			})
		},
	}
}

func voteCommand() *cli.Command {
	return &cli.Command{
		Name:      "vote",
		Usage:     "Vote for a feedback",
		ArgsUsage: "<id>",
		Flags: common.WithCommonFlags(
			&cli.BoolFlag{Name: "down", Usage: "Remove a vote instead of adding one"},
		),
		Action: func(ctx *cli.Context) error {
			id, err := parseID(ctx.Args().First())
			if err != nil {
				return errors.WithStack(err)
			}

			c, err := common.GetClient(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			voteType := model.VoteUp
			if ctx.Bool("down") {
				voteType = model.VoteDown
			}

			res, err := c.VoteFeedback(ctx.Context, id, voteType)
			if err != nil {
				return errors.Wrapf(err, "could not vote for feedback %d", id)
			}

			return common.Print(ctx, res, func(w io.Writer) error {
				fmt.Fprintf(w, "%s: %q now has %s votes\n", res.Message, res.Title, humanize.Comma(int64(res.Votes)))
				return nil
			})
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show feedback statistics",
		Flags: common.WithCommonFlags(),
		Action: func(ctx *cli.Context) error {
			c, err := common.GetClient(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			stats, err := c.FeedbackStats(ctx.Context)
			if err != nil {
				return errors.Wrap(err, "could not retrieve feedback statistics")
			}

			return common.Print(ctx, stats, func(w io.Writer) error {
				fmt.Fprintf(w, "Total feedback\t%s\n", humanize.Comma(int64(stats.TotalFeedback)))
				fmt.Fprintf(w, "Total votes\t%s\n", humanize.Comma(int64(stats.TotalVotes)))
				fmt.Fprintf(w, "Average votes\t%d\n", stats.AverageVotesPerFeedback)
				fmt.Fprintf(w, "By status\t%s\n", formatCounts(stats.StatusCounts))
				fmt.Fprintf(w, "By category\t%s\n", formatCounts(stats.CategoryCounts))
				fmt.Fprintf(w, "By priority\t%s\n", formatCounts(stats.PriorityCounts))
				return nil
			})
		},
	}
}

func parseID(raw string) (model.ID, error) {
	if raw == "" {
		return 0, errors.New("missing feedback id")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid feedback id '%s'", raw)
	}

	return model.ID(id), nil
}
