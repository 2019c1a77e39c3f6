package main

import (
	"context"
	"os"
	"strings"

	ddlambda "github.com/DataDog/datadog-lambda-go"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/vamoslabs/redesocial/functions"
	"github.com/vamoslabs/redesocial/utils/dotenv"
	Logger "github.com/vamoslabs/redesocial/utils/log"
)

// handlerFor maps the configured handler name onto the endpoint it serves.
// Every deployed function runs this same binary and selects itself through
// the HANDLER_NAME env (falling back to the runtime's _HANDLER).
func handlerFor(deps *functions.Deps, name string) (functions.Handler, bool) {
	handlers := map[string]functions.Handler{
		"auth.register":        deps.Register,
		"auth.confirmEmail":    deps.ConfirmEmail,
		"auth.forgotPassword":  deps.ForgotPassword,
		"auth.changePassword":  deps.ChangePassword,
		"login.handler":        deps.Login,
		"user.me":              deps.Me,
		"user.update":          deps.UpdateUser,
		"user.getUserById":     deps.GetUserById,
		"user.searchUser":      deps.SearchUsers,
		"follow.toggle":        deps.ToggleFollow,
		"post.create":          deps.CreatePost,
		"post.toggleLike":      deps.ToggleLike,
		"post.postComent":      deps.PostComment,
		"feed.findByUserId":    deps.FindFeedByUserId,
		"feed.home":            deps.HomeFeed,
	}
	handler, ok := handlers[name]
	return handler, ok
}

func handlerName() string {
	if name := os.Getenv("HANDLER_NAME"); name != "" {
		return name
	}
	return strings.TrimSpace(os.Getenv("_HANDLER"))
}

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	deps, err := functions.NewDeps(context.Background())
	if err != nil {
		Logger.Log.Fatal("fail to initialize collaborators: ", err)
	}

	name := handlerName()
	handler, ok := handlerFor(deps, name)
	if !ok {
		Logger.Log.Fatal("unknown handler name: ", name)
	}

	Logger.Log.Info("starting lambda handler ", name, ", waiting for requests...")
	lambda.Start(ddlambda.WrapFunction(handler, nil))
}
