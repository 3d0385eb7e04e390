package common

import (
	"encoding/json"
	"io"
	"net/url"
	"text/tabwriter"

	"github.com/bornholm/producthub/pkg/client"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	paramServer = "server"
	paramJSON   = "json"
)

var (
	flagServer = &cli.StringFlag{
		Name:    paramServer,
		Aliases: []string{"s"},
		EnvVars: []string{"PRODUCTHUB_SERVER"},
		Value:   "http://localhost:5000",
		Usage:   "ProductHub server base url",
	}
	flagJSON = &cli.BoolFlag{
		Name:  paramJSON,
		Value: false,
		Usage: "Print the raw JSON response",
	}
)

func WithCommonFlags(flags ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		flagServer,
		flagJSON,
	}, flags...)
}

func GetClient(ctx *cli.Context) (*client.Client, error) {
	rawServerURL := ctx.String(paramServer)

	serverURL, err := url.Parse(rawServerURL)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse server url '%s'", rawServerURL)
	}

	return client.New(
		client.WithBaseURL(serverURL),
	), nil
}

// Print writes value as indented JSON when the json flag is set and
// delegates to table otherwise.
func Print(ctx *cli.Context, value any, table func(w io.Writer) error) error {
	out := ctx.App.Writer

	if ctx.Bool(paramJSON) {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(value); err != nil {
			return errors.WithStack(err)
		}

		return nil
	}

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	if err := table(writer); err != nil {
		return errors.WithStack(err)
	}

	if err := writer.Flush(); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
