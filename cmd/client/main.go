package main

import (
	"github.com/bornholm/producthub/internal/command"
	"github.com/bornholm/producthub/internal/command/feedback"
	"github.com/bornholm/producthub/internal/command/feature"
	"github.com/bornholm/producthub/internal/command/health"
	"github.com/bornholm/producthub/internal/command/integration"
	"github.com/bornholm/producthub/internal/command/prioritize"
)

func main() {
	command.Main(
		"producthub", "a ProductHub client tool",
		feedback.Command(),
		feature.Command(),
		prioritize.Command(),
		integration.Command(),
		health.Command(),
	)
}
