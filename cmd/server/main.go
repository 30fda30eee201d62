package main

import (
	"github.com/atlascrm/relgraph/backend/internal/server"
	"github.com/atlascrm/relgraph/backend/internal/util"
	"github.com/atlascrm/relgraph/backend/pkg/logger"
	"github.com/atlascrm/relgraph/backend/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
