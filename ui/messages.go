package ui

// TUI message types fed to the build model from the build goroutine

// StageProgressMsg reports frame staging progress (primary path)
type StageProgressMsg struct {
	Done  int
	Total int
}

// EncodeProgressMsg reports the ffmpeg encode percentage
type EncodeProgressMsg struct {
	Percent float64 // 0 to 100
}

// FallbackStartedMsg signals the primary path failed and the motion-JPEG
// writer took over
type FallbackStartedMsg struct {
	Reason string
}

// FrameWrittenMsg reports fallback writer progress
type FrameWrittenMsg struct {
	Written int
	Total   int
}

// BuildCompleteMsg ends the TUI
type BuildCompleteMsg struct {
	OutputPath string
	Err        error
}
