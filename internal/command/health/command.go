package health

import (
	"fmt"
	"io"
	"time"

	"github.com/bornholm/producthub/internal/command/common"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Check the server health",
		Flags: common.WithCommonFlags(),
		Action: func(ctx *cli.Context) error {
			c, err := common.GetClient(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			health, err := c.Health(ctx.Context)
			if err != nil {
				return errors.Wrap(err, "could not check server health")
			}

			return common.Print(ctx, health, func(w io.Writer) error {
				startedAt := health.Timestamp.Add(-time.Duration(health.Uptime * float64(time.Second)))
				fmt.Fprintf(w, "Status\t%s\n", health.Status)
				fmt.Fprintf(w, "Started\t%s\n", humanize.Time(startedAt))
				return nil
			})
		},
	}
}
