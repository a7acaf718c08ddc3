package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lepinkainen/snapmotion/timelapse"
	"github.com/lepinkainen/snapmotion/types"
	"github.com/lepinkainen/snapmotion/ui"
)

// CreateCmd builds a timelapse video from a folder of still images
type CreateCmd struct {
	Directory string `arg:"" name:"directory" help:"Folder containing the source images" type:"existingdir"`

	Duration   float64 `help:"Seconds each image is shown" default:"2.0"`
	Sort       string  `help:"Image order" default:"name" enum:"name,mtime"`
	Resolution string  `help:"Force output resolution (WIDTHxHEIGHT, e.g. 1280x720)"`
	Output     string  `help:"Output file name without extension" default:"timelapse"`
	OutputDir  string  `help:"Folder the video is written to" default:"." type:"existingdir"`

	SkipDuplicates bool `help:"Drop consecutive near-identical images"`
	Threshold      int  `help:"Hamming distance threshold for near-duplicates (0-64)" default:"5"`

	DryRun bool `help:"Analyze the job without creating a video"`
	NoTUI  bool `name:"no-tui" help:"Plain progress output instead of the interactive display"`
	Yes    bool `short:"y" help:"Skip the confirmation prompt"`
	Verify bool `help:"Probe the output with ffprobe after encoding"`
}

// Run validates the flags and executes the build
func (cmd *CreateCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	if appCtx != nil {
		version = appCtx.Version
	}
	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("SnapMotion %s", version)))

	spec, err := cmd.toJobSpec()
	if err != nil {
		return err
	}

	return runJob(spec, version)
}

// toJobSpec validates the flag values into a render job. Validation errors
// abort before any image is touched.
func (cmd *CreateCmd) toJobSpec() (jobSpec, error) {
	opts := timelapse.Options{FrameDuration: cmd.Duration}

	if cmd.Resolution != "" {
		resolution, err := timelapse.ParseResolution(cmd.Resolution)
		if err != nil {
			return jobSpec{}, err
		}
		opts.Resize = &resolution
	}

	name := strings.TrimSpace(cmd.Output)
	if name == "" {
		return jobSpec{}, fmt.Errorf("%w: output file name cannot be empty", timelapse.ErrValidation)
	}
	opts.OutputPath = filepath.Join(cmd.OutputDir, name+".mp4")

	if err := opts.Validate(); err != nil {
		return jobSpec{}, err
	}

	return jobSpec{
		directory:      cmd.Directory,
		sortMode:       timelapse.SortMode(cmd.Sort),
		opts:           opts,
		skipDuplicates: cmd.SkipDuplicates,
		threshold:      cmd.Threshold,
		dryRun:         cmd.DryRun,
		noTUI:          cmd.NoTUI,
		assumeYes:      cmd.Yes,
		verify:         cmd.Verify,
	}, nil
}
