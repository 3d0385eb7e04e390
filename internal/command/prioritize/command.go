package prioritize

import (
	"fmt"
	"io"

	"github.com/bornholm/producthub/internal/command/common"
	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/service"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "prioritize",
		Usage: "Rank features by RICE score",
		Flags: common.WithCommonFlags(
			&cli.StringFlag{
				Name:  "quadrant",
				Usage: "Only keep features of the given quadrant (quick-wins, major-projects, fill-ins, time-wasters)",
			},
		),
		Action: func(ctx *cli.Context) error {
			quadrant := model.Quadrant(ctx.String("quadrant"))
			if quadrant != "" && !quadrant.Valid() {
				return errors.Errorf("invalid quadrant '%s'", quadrant)
			}

			c, err := common.GetClient(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			features, err := c.AllFeatures(ctx.Context)
			if err != nil {
				return errors.Wrap(err, "could not retrieve features")
			}

			ranking := service.Prioritize(features, quadrant)

			return common.Print(ctx, ranking, func(w io.Writer) error {
				return writeRanking(w, ranking)
			})
		},
	}
}

func writeRanking(w io.Writer, ranking []*service.PrioritizedFeature) error {
	if _, err := fmt.Fprintln(w, "RANK\tID\tTITLE\tRICE\tQUADRANT\tIMPACT\tEFFORT\tVOTES"); err != nil {
		return errors.WithStack(err)
	}

	for i, p := range ranking {
		_, err := fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%d\t%d\t%s\n",
			humanize.Ordinal(i+1), p.ID, p.Title, humanize.Comma(int64(p.RICE)),
			p.Quadrant, p.Impact, p.Effort, humanize.Comma(int64(p.Votes)),
		)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}
