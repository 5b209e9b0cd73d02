package worker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Zixzorash/BURN-SUB/internal/config"
)

const downscaleStage = "scale=-2:720"

// BurnArgs is everything argument assembly needs for one job. SubtitlePath
// empty means no burn stage; FrameRate zero means no rate override.
type BurnArgs struct {
	InputPath    string
	SubtitlePath string
	OutputPath   string
	ForceStyle   string
	FrameRate    float64
	InputSize    int64
}

// BuildArgs assembles the engine command line in a fixed order: input,
// optional filter graph, frame-rate override, codec parameters tiered by
// input size, output last. Large inputs get a downscale stage ahead of the
// subtitle burn and a faster, lossier encode tier.
func BuildArgs(in BurnArgs, staging config.StagingConfig) []string {
	large := in.InputSize > largeFileThreshold(staging)

	args := []string{"-i", in.InputPath}

	var stages []string
	if large {
		stages = append(stages, downscaleStage)
	}
	if in.SubtitlePath != "" {
		stages = append(stages, fmt.Sprintf("subtitles=%s:force_style='%s'", in.SubtitlePath, in.ForceStyle))
	}
	if len(stages) > 0 {
		args = append(args, "-vf", strings.Join(stages, ","))
	}

	if in.FrameRate > 0 {
		args = append(args, "-r", strconv.FormatFloat(in.FrameRate, 'f', -1, 64))
	}

	if large {
		args = append(args, "-c:v", "libx264", "-preset", "faster", "-crf", "28")
	} else {
		args = append(args, "-c:v", "libx264", "-preset", "medium", "-crf", "23")
	}
	args = append(args,
		"-c:a", "aac",
		"-b:a", "128k",
		"-movflags", "+faststart",
		"-y", in.OutputPath,
	)
	return args
}
