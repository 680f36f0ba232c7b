// filepath: internal/media/conversion.go
package media

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mediaconform/internal/geometry"
	"mediaconform/internal/logging"
	"os"
	"os/exec"
	"strings"
	"sync"
)

var (
	// ffmpegPath holds the validated path to the executable.
	ffmpegPath string
	// ffprobePath holds the validated path to the ffprobe executable.
	ffprobePath string
	// ffmpegCheckOnce ensures we only look for ffmpeg once.
	ffmpegCheckOnce sync.Once
)

// Initialize sets up the paths for the ffmpeg and ffprobe executables.
// It should be called once at startup.
func Initialize(ffmpegConfiguredPath string, ffprobeConfiguredPath string) {
	ffmpegCheckOnce.Do(func() {
		// --- FFmpeg Check ---
		if ffmpegConfiguredPath != "" {
			if _, err := os.Stat(ffmpegConfiguredPath); err == nil {
				logging.Log.Infof("Using configured FFmpeg path: %s", ffmpegConfiguredPath)
				ffmpegPath = ffmpegConfiguredPath
			} else {
				logging.Log.Warnf("Configured ffmpeg_path '%s' not found, falling back to system PATH.", ffmpegConfiguredPath)
			}
		}

		if ffmpegPath == "" { // Only check PATH if not configured
			path, err := exec.LookPath("ffmpeg")
			if err != nil {
				logging.Log.Warn("---------------------------------------------------------")
				logging.Log.Warn("FFmpeg executable not found in configured path or system PATH.")
				logging.Log.Warn("Video conforming will be DISABLED.")
				logging.Log.Warn("---------------------------------------------------------")
				ffmpegPath = "" // Explicitly set to empty
			} else {
				logging.Log.Infof("FFmpeg found in PATH: %s. Video conforming enabled.", path)
				ffmpegPath = path
			}
		}

		// --- FFprobe Check ---
		if ffprobeConfiguredPath != "" {
			if _, err := os.Stat(ffprobeConfiguredPath); err == nil {
				logging.Log.Infof("Using configured FFprobe path: %s", ffprobeConfiguredPath)
				ffprobePath = ffprobeConfiguredPath
			} else {
				logging.Log.Warnf("Configured ffprobe_path '%s' not found, falling back to system PATH.", ffprobeConfiguredPath)
			}
		}

		if ffprobePath == "" { // Not configured: look next to the ffmpeg binary first
			if ffmpegPath != "" {
				probePath := strings.Replace(ffmpegPath, "ffmpeg", "ffprobe", 1)
				if _, err := os.Stat(probePath); err == nil {
					logging.Log.Infof("Found ffprobe alongside ffmpeg in PATH: %s", probePath)
					ffprobePath = probePath
				}
			}
		}

		if ffprobePath == "" { // Still not found? Check PATH explicitly.
			path, err := exec.LookPath("ffprobe")
			if err != nil {
				logging.Log.Warn("---------------------------------------------------------")
				logging.Log.Warn("ffprobe executable not found. Video dimension probing will be disabled.")
				logging.Log.Warn("---------------------------------------------------------")
				ffprobePath = ""
			} else {
				logging.Log.Infof("ffprobe found in PATH: %s. Video dimension probing enabled.", path)
				ffprobePath = path
			}
		}
	})
}

// IsFFmpegAvailable checks if the ffmpeg executable path was successfully found.
func IsFFmpegAvailable() bool {
	Initialize("", "")
	return ffmpegPath != ""
}

// GetFFmpegPath returns the determined path to the ffmpeg executable.
func GetFFmpegPath() string {
	Initialize("", "")
	return ffmpegPath
}

// IsFFprobeAvailable checks if the ffprobe executable path was successfully found.
func IsFFprobeAvailable() bool {
	Initialize("", "")
	return ffprobePath != ""
}

// GetFFprobePath returns the determined path to the ffprobe executable.
func GetFFprobePath() string {
	Initialize("", "")
	return ffprobePath
}

type ffprobeStream struct {
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
}

// ProbeVideoDimensions runs ffprobe against filePath and returns the pixel
// dimensions of its first video stream, the input VideoResizer needs before
// it can be constructed.
func ProbeVideoDimensions(filePath string) (geometry.Dimensions, error) {
	if !IsFFprobeAvailable() {
		return geometry.Dimensions{}, fmt.Errorf("ffprobe is not available")
	}

	cmdArgs := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-i", filePath,
	}

	cmd := exec.Command(GetFFprobePath(), cmdArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.Log.Debugf("Starting ffprobe dimension probe: %s %s", GetFFprobePath(), strings.Join(cmdArgs, " "))

	if err := cmd.Run(); err != nil {
		logging.Log.Errorf("ffprobe execution failed: %v\nffprobe output:\n%s", err, stderr.String())
		return geometry.Dimensions{}, fmt.Errorf("ffprobe error: %s", stderr.String())
	}

	var output ffprobeOutput
	if err := json.Unmarshal(stdout.Bytes(), &output); err != nil {
		logging.Log.Errorf("Failed to parse ffprobe JSON output: %v\nOutput: %s", err, stdout.String())
		return geometry.Dimensions{}, fmt.Errorf("failed to parse ffprobe JSON: %w", err)
	}

	for _, stream := range output.Streams {
		if stream.CodecType == "video" && stream.Width > 0 && stream.Height > 0 {
			return geometry.NewDimensions(stream.Width, stream.Height), nil
		}
	}

	return geometry.Dimensions{}, fmt.Errorf("no video stream found in %s", filePath)
}
