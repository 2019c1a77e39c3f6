package main

import (
	"context"

	"github.com/vamoslabs/redesocial/functions"
	"github.com/vamoslabs/redesocial/server"
	"github.com/vamoslabs/redesocial/server/middlewares"
	"github.com/vamoslabs/redesocial/utils/dotenv"
	Logger "github.com/vamoslabs/redesocial/utils/log"
)

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	deps, err := functions.NewDeps(context.Background())
	if err != nil {
		Logger.Log.Fatal("fail to initialize collaborators: ", err)
	}
	middlewares.Setup(deps.Identity)

	router := server.NewRouter(deps, middlewares.Auth())

	Logger.Log.Info("local gateway starts up")
	router.Run(":8080")
}
