package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mediaconform/internal/canvas"
	"mediaconform/internal/config"
	"mediaconform/internal/media"
	"mediaconform/internal/resize"
	"mediaconform/internal/services"
)

// ConformOptions mirrors a subset of the HTTP API's form fields (kind, feed,
// operation, aspect bounds) for scripting a single conform operation without
// standing up a server. Crop focus, flip flags, useBestStoryRatio and
// allowNewAspectDeviation are not exposed and take their defaults.
type ConformOptions struct {
	Kind      string
	Input     string
	Output    string
	Feed      string
	Operation string
	MinAspect float64
	MaxAspect float64
	HasMin    bool
	HasMax    bool
}

func NewConformCommand(globalOptions *GlobalOptions) *cobra.Command {
	opts := &ConformOptions{}

	cmd := &cobra.Command{
		Use:   "conform",
		Short: "Conform a single local file to a canvas profile",
		Long:  "Runs the same guard/calculate/plan/render pipeline as POST /api/v1/conform, but against a local file, with no job ledger or audit trail.",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.HasMin = cmd.Flags().Changed("min-aspect")
			opts.HasMax = cmd.Flags().Changed("max-aspect")
			return runConform(globalOptions, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "photo", "photo, video, or thumb")
	cmd.Flags().StringVar(&opts.Input, "input", "", "Path to the source file (required)")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Path to write the rendered output (required)")
	cmd.Flags().StringVar(&opts.Feed, "feed", "general", "general or story")
	cmd.Flags().StringVar(&opts.Operation, "operation", "crop", "crop or expand")
	cmd.Flags().Float64Var(&opts.MinAspect, "min-aspect", 0, "Override the feed's default minimum aspect ratio")
	cmd.Flags().Float64Var(&opts.MaxAspect, "max-aspect", 0, "Override the feed's default maximum aspect ratio")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")

	return cmd
}

func runConform(globalOptions *GlobalOptions, opts *ConformOptions) error {
	cfg := globalOptions.Conf
	media.Initialize(cfg.Media.FFmpegPath, cfg.Media.FFprobePath)

	in := config.ProfileInput{
		Feed:      canvas.General,
		Operation: canvas.Crop,
	}
	if opts.Feed == "story" {
		in.Feed = canvas.Story
	}
	if opts.Operation == "expand" {
		in.Operation = canvas.Expand
	}
	if opts.HasMin {
		in.MinAspect = &opts.MinAspect
	}
	if opts.HasMax {
		in.MaxAspect = &opts.MaxAspect
	}

	profile, err := config.NewProfile(in)
	if err != nil {
		return err
	}

	renderer, err := buildLocalResizer(cfg, opts, profile)
	if err != nil {
		return err
	}

	conformSvc := services.NewConformService(nil, nil, nil)
	result, err := conformSvc.Conform(context.Background(), services.ConformRequest{
		Profile: profile, Resizer: renderer, Actor: "cli",
	})
	if err != nil {
		return fmt.Errorf("conform failed: %w", err)
	}

	if result.Processed {
		globalOptions.Logger.Infof("wrote %s (canvas %dx%d)", result.OutputPath, result.Canvas.Width, result.Canvas.Height)
	} else {
		globalOptions.Logger.Infof("input already conforms, nothing written")
	}
	return nil
}

// buildLocalResizer mirrors handlers.buildResizer, but against a local file
// path instead of a multipart upload.
func buildLocalResizer(cfg *config.Config, opts *ConformOptions, profile config.Profile) (interface {
	resize.Resizer
	SetFlipped(hor, ver bool)
}, error) {
	switch opts.Kind {
	case "photo":
		f, err := os.Open(opts.Input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		minW, maxW := cfg.Resize.PhotoGeneralMinWidth, cfg.Resize.PhotoGeneralMaxWidth
		if profile.Feed == canvas.Story {
			minW, maxW = cfg.Resize.PhotoStoryMinWidth, cfg.Resize.PhotoStoryMaxWidth
		}
		return resize.NewPhotoResizer(f, minW, maxW, profile.BGColor, false, opts.Output)

	case "thumb":
		f, err := os.Open(opts.Input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return resize.NewThumbResizer(f, cfg.Resize.ThumbMinWidth, cfg.Resize.ThumbMaxWidth, profile.BGColor, opts.Output)

	case "video":
		if !media.IsFFmpegAvailable() {
			return nil, fmt.Errorf("video conforming requires ffmpeg, which is not available")
		}
		dims, err := media.ProbeVideoDimensions(opts.Input)
		if err != nil {
			return nil, err
		}
		return resize.NewVideoResizer(media.GetFFmpegPath(), opts.Input, dims, cfg.Resize.VideoMinWidth, cfg.Resize.VideoMaxWidth, profile.BGColor, true, opts.Output), nil
	}
	return nil, fmt.Errorf("unsupported kind %q", opts.Kind)
}
