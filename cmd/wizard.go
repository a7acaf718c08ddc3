package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lepinkainen/snapmotion/timelapse"
	"github.com/lepinkainen/snapmotion/types"
	"github.com/lepinkainen/snapmotion/ui"
)

// WizardCmd walks through the render job parameters interactively, the way
// the tool is meant to be used by non-CLI people
type WizardCmd struct {
	NoTUI bool `name:"no-tui" help:"Plain progress output instead of the interactive display"`
}

// Run prompts for every job parameter in order and then executes the same
// build pipeline as the create command. Each invalid answer aborts the job
// before any processing begins.
func (cmd *WizardCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	if appCtx != nil {
		version = appCtx.Version
	}

	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("✨ SnapMotion Wizard %s ✨", version)))
	fmt.Println("Turn your 📸 photos into timelapse videos in just a few steps!")

	reader := bufio.NewReader(stdin)

	spec, err := promptJobSpec(reader)
	if err != nil {
		return err
	}
	spec.noTUI = cmd.NoTUI
	// The confirmation prompt must read from the same buffered reader,
	// piped input may already sit in its buffer
	spec.input = reader

	return runJob(spec, version)
}

// promptJobSpec collects and validates all render job parameters
func promptJobSpec(reader *bufio.Reader) (jobSpec, error) {
	imageFolder, err := prompt(reader, "\n📂 Path to the folder with your images: ")
	if err != nil {
		return jobSpec{}, err
	}
	if fi, err := os.Stat(imageFolder); err != nil || !fi.IsDir() {
		return jobSpec{}, fmt.Errorf("%w: source folder %q does not exist", timelapse.ErrValidation, imageFolder)
	}

	fmt.Println("\n📑 How should we sort the images?")
	fmt.Println("1️⃣  By filename (default)")
	fmt.Println("2️⃣  By date/time")
	sortChoice, err := prompt(reader, "Enter your choice (1 or 2): ")
	if err != nil {
		return jobSpec{}, err
	}
	sortMode := timelapse.SortByName
	if sortChoice == "2" {
		sortMode = timelapse.SortByModTime
	}

	durationInput, err := prompt(reader, "\n⏱️  Seconds each photo is shown (e.g. 2.0): ")
	if err != nil {
		return jobSpec{}, err
	}
	frameDuration := 2.0
	if durationInput != "" {
		frameDuration, err = strconv.ParseFloat(durationInput, 64)
		if err != nil || frameDuration <= 0 {
			return jobSpec{}, fmt.Errorf("%w: duration must be a positive number, got %q", timelapse.ErrValidation, durationInput)
		}
	}

	fmt.Println("\n📏 Recommended video resolutions:")
	fmt.Println("- HD (1280x720) - Good balance of quality and file size")
	fmt.Println("- Full HD (1920x1080) - Higher quality, larger file")
	resizeChoice, err := prompt(reader, "\nResolution (e.g. 1280x720) or press Enter to keep original size: ")
	if err != nil {
		return jobSpec{}, err
	}
	var resize *timelapse.Resolution
	if resizeChoice != "" {
		resolution, err := timelapse.ParseResolution(resizeChoice)
		if err != nil {
			return jobSpec{}, err
		}
		resize = &resolution
	}

	fileName, err := prompt(reader, "\n🖋️  Name for the video file (without extension): ")
	if err != nil {
		return jobSpec{}, err
	}
	if fileName == "" {
		return jobSpec{}, fmt.Errorf("%w: file name cannot be empty", timelapse.ErrValidation)
	}

	outputFolder, err := prompt(reader, "📂 Folder the video should be saved to: ")
	if err != nil {
		return jobSpec{}, err
	}
	if fi, err := os.Stat(outputFolder); err != nil || !fi.IsDir() {
		return jobSpec{}, fmt.Errorf("%w: output folder %q does not exist", timelapse.ErrValidation, outputFolder)
	}

	return jobSpec{
		directory: imageFolder,
		sortMode:  sortMode,
		opts: timelapse.Options{
			FrameDuration: frameDuration,
			Resize:        resize,
			OutputPath:    filepath.Join(outputFolder, fileName+".mp4"),
		},
	}, nil
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
