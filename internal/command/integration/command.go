package integration

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
		Name:  "integrations",
		Usage: "Manage third-party integrations",
		Subcommands: []*cli.Command{
			listCommand(),
			syncCommand(),
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List integrations",
		Flags: common.WithCommonFlags(),
		Action: func(ctx *cli.Context) error {
			c, err := common.GetClient(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			page, err := c.ListIntegrations(ctx.Context,
				client.WithListSort("id", query.OrderAsc),
				client.WithListPage(1, 100),
			)
			if err != nil {
				return errors.Wrap(err, "could not list integrations")
			}

			return common.Print(ctx, page, func(w io.Writer) error {
				fmt.Fprintln(w, "ID\tNAME\tTYPE\tACTIVE\tLAST SYNC")
				for _, i := range page.Data {
					lastSync := "never"
					if i.LastSyncAt != nil {
						lastSync = humanize.Time(*i.LastSyncAt)
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%s\n", i.ID, i.Name, i.Type, i.IsActive, lastSync)
				}
				return nil
			})
		},
	}
}

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:      "sync",
		Usage:     "Synchronize an integration",
		ArgsUsage: "<id>",
		Flags: common.WithCommonFlags(
			&cli.BoolFlag{Name: "wait", Usage: "Wait for the synchronization to finish"},
		),
		Action: func(ctx *cli.Context) error {
			raw := ctx.Args().First()

			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return errors.Wrapf(err, "invalid integration id '%s'", raw)
			}

			c, err := common.GetClient(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			res, err := c.SyncIntegration(ctx.Context, model.ID(id))
			if err != nil {
				return errors.Wrapf(err, "could not synchronize integration %d", id)
			}

			if !ctx.Bool("wait") {
				return common.Print(ctx, res, func(w io.Writer) error {
					fmt.Fprintf(w, "%s\ttask %s\n", res.Message, res.TaskID)
					return nil
				})
			}

			task, err := c.WaitFor(ctx.Context, res.TaskID)
			if err != nil {
				return errors.Wrapf(err, "could not wait for task %s", res.TaskID)
			}

			if task.Error != "" {
				return errors.Errorf("synchronization failed: %s", task.Error)
			}

			return common.Print(ctx, task, func(w io.Writer) error {
				fmt.Fprintf(w, "Task %s %s\n", task.ID, task.Status)
				return nil
			})
		},
	}
}
