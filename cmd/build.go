package cmd

import (
	"bufio"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/schollz/progressbar/v3"

	"github.com/lepinkainen/snapmotion/timelapse"
	"github.com/lepinkainen/snapmotion/ui"
	"github.com/lepinkainen/snapmotion/utils"
)

// stdin is swapped out in tests
var stdin io.Reader = os.Stdin

// jobSpec is a fully validated render job, shared by the create command
// and the wizard
type jobSpec struct {
	directory      string
	sortMode       timelapse.SortMode
	opts           timelapse.Options
	skipDuplicates bool
	threshold      int
	dryRun         bool
	noTUI          bool
	assumeYes      bool
	verify         bool

	// input carries the wizard's buffered reader into the confirmation
	// prompt. A second reader over the same stdin would lose lines the
	// first one buffered ahead.
	input *bufio.Reader
}

// runJob collects the frame sequence, shows the summary, and drives the
// build through the orchestrator
func runJob(spec jobSpec, version string) error {
	fmt.Println(ui.InfoStyle.Render("📥 Collecting images..."))

	images, err := timelapse.CollectImages(spec.directory, spec.sortMode)
	if err != nil {
		return err
	}

	if spec.skipDuplicates {
		kept, skipped, err := timelapse.FilterNearDuplicates(images, spec.threshold)
		if err != nil {
			return err
		}
		if skipped > 0 {
			fmt.Printf("⏭️  Skipped %d near-duplicate image(s)\n", skipped)
		}
		images = kept
		if len(images) == 0 {
			return timelapse.ErrNoImages
		}
	}

	printSummary(images, spec.opts)

	if utils.IsNetworkDrive(spec.directory) {
		fmt.Println(ui.WarningStyle.Render("⚠️  Source folder is on a network drive, staging may be slow"))
	}

	if spec.dryRun {
		return runDryRun(images, spec.opts)
	}

	if !spec.assumeYes {
		reader := spec.input
		if reader == nil {
			reader = bufio.NewReader(stdin)
		}
		if !confirm(reader, "✅ Ready to begin processing? (y/n): ") {
			fmt.Println("🛑 Processing canceled.")
			return nil
		}
	}

	ffmpegPath, searched := utils.FindFFmpeg()
	if ffmpegPath == "" {
		fmt.Println(ui.WarningStyle.Render("⚠️  ffmpeg not found, the fallback encoder will be used. " + utils.InstallInstructions()))
	}
	builder := timelapse.NewBuilder(ffmpegPath, searched)

	var result *timelapse.Result
	if spec.noTUI {
		result, err = buildPlain(builder, images, spec.opts)
	} else {
		result, err = buildWithTUI(builder, images, spec.opts, version)
	}
	if err != nil {
		return err
	}

	printResult(result)

	if spec.verify {
		verifyResult(result, spec.opts)
	}
	return nil
}

func printSummary(images []string, opts timelapse.Options) {
	fmt.Printf("\n📊 Summary:\n")
	fmt.Printf("   Total images: %d\n", len(images))
	fmt.Printf("   Duration per image: %g seconds\n", opts.FrameDuration)
	fmt.Printf("   Estimated video duration: %.1f seconds\n", opts.TotalDuration(len(images)))
	if opts.Resize != nil {
		fmt.Printf("   Output resolution: %s\n", opts.Resize)
	}
	fmt.Printf("   Output: %s\n\n", opts.OutputPath)
}

// runDryRun analyzes the frame sequence without encoding anything
func runDryRun(images []string, opts timelapse.Options) error {
	fmt.Println(ui.ProcessingStyle.Render("🔍 DRY RUN MODE - No video will be created"))

	for _, imagePath := range images {
		f, err := os.Open(imagePath)
		if err != nil {
			fmt.Printf("   ❌ %s: %v\n", filepath.Base(imagePath), err)
			continue
		}
		cfg, _, err := image.DecodeConfig(f)
		_ = f.Close()
		if err != nil {
			fmt.Printf("   ❌ %s: %v\n", filepath.Base(imagePath), err)
			continue
		}

		if opts.Resize != nil {
			fmt.Printf("   🖼️  %s (%dx%d → %s)\n", filepath.Base(imagePath), cfg.Width, cfg.Height, opts.Resize)
		} else {
			fmt.Printf("   🖼️  %s (%dx%d)\n", filepath.Base(imagePath), cfg.Width, cfg.Height)
		}
	}

	fmt.Printf("\n   Would encode %d images into %s (%.1f seconds)\n",
		len(images), opts.OutputPath, opts.TotalDuration(len(images)))
	return nil
}

// buildPlain runs the build with progressbar output
func buildPlain(builder *timelapse.Builder, images []string, opts timelapse.Options) (*timelapse.Result, error) {
	stageBar := progressbar.NewOptions(len(images),
		progressbar.OptionSetDescription("Preparing frames"),
		progressbar.OptionClearOnFinish(),
	)
	encodeBar := progressbar.NewOptions(100,
		progressbar.OptionSetDescription("Encoding video"),
		progressbar.OptionClearOnFinish(),
	)

	builder.FFmpeg.OnStage = func(done, total int) { _ = stageBar.Set(done) }
	builder.FFmpeg.OnProgress = func(percent float64) { _ = encodeBar.Set(int(percent)) }
	builder.OnFallback = func(err error) {
		fmt.Printf("\n%s\n", ui.WarningStyle.Render(fmt.Sprintf("⚠️  ffmpeg failed, falling back to motion-JPEG: %v", err)))
	}
	builder.Fallback.OnFrame = func(written, total int) {
		encodeBar.ChangeMax(total)
		_ = encodeBar.Set(written)
	}

	return builder.Build(images, opts)
}

// buildWithTUI runs the build behind the bubbletea progress model
func buildWithTUI(builder *timelapse.Builder, images []string, opts timelapse.Options, version string) (*timelapse.Result, error) {
	p := tea.NewProgram(ui.NewBuildModel(len(images), version))

	builder.FFmpeg.OnStage = func(done, total int) {
		p.Send(ui.StageProgressMsg{Done: done, Total: total})
	}
	builder.FFmpeg.OnProgress = func(percent float64) {
		p.Send(ui.EncodeProgressMsg{Percent: percent})
	}
	builder.OnFallback = func(err error) {
		p.Send(ui.FallbackStartedMsg{Reason: err.Error()})
	}
	builder.Fallback.OnFrame = func(written, total int) {
		p.Send(ui.FrameWrittenMsg{Written: written, Total: total})
	}

	type buildOutcome struct {
		result *timelapse.Result
		err    error
	}
	done := make(chan buildOutcome, 1)

	go func() {
		result, err := builder.Build(images, opts)
		outcome := buildOutcome{result: result, err: err}
		msg := ui.BuildCompleteMsg{Err: err}
		if result != nil {
			msg.OutputPath = result.OutputPath
		}
		p.Send(msg)
		done <- outcome
	}()

	if _, err := p.Run(); err != nil {
		return nil, fmt.Errorf("display error: %w", err)
	}

	outcome := <-done
	return outcome.result, outcome.err
}

func printResult(result *timelapse.Result) {
	fmt.Printf("\n%s\n", ui.SuccessStyle.Render("🌟 Success! Your video has been created:"))
	fmt.Printf("   📍 Location: %s\n", result.OutputPath)
	fmt.Printf("   ⏱️  Duration: %.1f seconds\n", result.TotalDuration)
	fmt.Printf("   🖼️  Total images: %d\n", result.ImageCount)
	fmt.Printf("   📦 File size: %.1f MB\n", float64(result.FileSize)/(1024*1024))
	if result.UsedFallback {
		fmt.Printf("   🎞️  Encoder: motion-JPEG fallback (AVI container)\n")
	}
}

func verifyResult(result *timelapse.Result, opts timelapse.Options) {
	if !utils.HasFFprobe() {
		fmt.Println(ui.WarningStyle.Render("⚠️  ffprobe not found, skipping output verification"))
		return
	}

	if err := timelapse.VerifyOutput(result, opts); err != nil {
		fmt.Printf("%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ Verification failed: %v", err)))
		return
	}
	fmt.Printf("%s\n", ui.SuccessStyle.Render("✅ Output verified"))
}

func confirm(reader *bufio.Reader, prompt string) bool {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
