package main

import (
	"github.com/alecthomas/kong"

	"github.com/lepinkainen/snapmotion/cmd"
	"github.com/lepinkainen/snapmotion/types"
)

var Version = "dev"

type CLI struct {
	Create cmd.CreateCmd `cmd:"" help:"Create a timelapse video from a folder of images"`
	Wizard cmd.WizardCmd `cmd:"" help:"Interactive step-by-step timelapse creation"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("snapmotion"),
		kong.Description("Turn a folder of photos into a timelapse video"),
		kong.Bind(&types.AppContext{Version: Version}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
