package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
	"github.com/Ingenimax/multimodal-go/pkg/payload"
	"github.com/Ingenimax/multimodal-go/pkg/workflow"
)

const (
	defaultTextPrompt      = "Summarize the key features of multimodal AI systems."
	defaultImageURLPrompt  = "Describe this image in detail."
	defaultImageFilePrompt = "What do you see in this image?"
	defaultAudioPrompt     = "Transcribe and summarize this audio."
	defaultVideoPrompt     = "Describe what happens in this video."
)

// generateFlags are the sampling flags shared by the single-shot commands
type generateFlags struct {
	model       string
	system      string
	maxTokens   int
	temperature float64
}

func (f *generateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.model, "model", "m", "", "Model name (defaults to the configured model for this modality)")
	cmd.Flags().StringVar(&f.system, "system", "", "System message")
	cmd.Flags().IntVar(&f.maxTokens, "max-tokens", 0, "Maximum output tokens (0 uses the provider default)")
	cmd.Flags().Float64Var(&f.temperature, "temperature", -1, "Sampling temperature (negative uses the provider default)")
}

func (f *generateFlags) options() []interfaces.GenerateOption {
	var opts []interfaces.GenerateOption
	if f.system != "" {
		opts = append(opts, interfaces.WithSystemMessage(f.system))
	}
	if f.maxTokens > 0 {
		opts = append(opts, interfaces.WithMaxTokens(f.maxTokens))
	}
	if f.temperature >= 0 {
		opts = append(opts, interfaces.WithTemperature(f.temperature))
	}
	return opts
}

func (f *generateFlags) modelOr(fallback string) string {
	if f.model != "" {
		return f.model
	}
	return fallback
}

// submit builds a message from parts, sends it and prints the response
func (a *app) submit(ctx context.Context, cmd *cobra.Command, model string, flags *generateFlags, parts ...interfaces.ContentPart) error {
	msg, err := payload.BuildMessage(parts...)
	if err != nil {
		return err
	}

	submitter := payload.NewSubmitter(a.client, payload.WithLogger(a.logger))
	resp, err := submitter.Submit(ctx, model, msg, flags.options()...)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Response: %s\n", resp.Content)
	return nil
}

func newTextCmd(a *app) *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "text [prompt]",
		Short: "Send a text prompt",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := defaultTextPrompt
			if len(args) == 1 {
				prompt = args[0]
			}
			return a.submit(cmd.Context(), cmd, flags.modelOr(a.cfg.Models.Text), flags,
				interfaces.NewTextPart(prompt))
		},
	}
	flags.register(cmd)

	return cmd
}

func newImageCmd(a *app) *cobra.Command {
	flags := &generateFlags{}
	var (
		prompt string
		urls   []string
		files  []string
		detail string
	)

	cmd := &cobra.Command{
		Use:   "image",
		Short: "Send a prompt with one or more images",
		Long: `Send a prompt followed by images.

Images given with --url are fetched by the model provider. Images given
with --file are read from the configured storage source and embedded.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(urls) == 0 && len(files) == 0 {
				return fmt.Errorf("at least one --url or --file is required")
			}
			ctx := cmd.Context()

			images, err := buildImageParts(ctx, a.source, urls, files, detail)
			if err != nil {
				return err
			}

			text := prompt
			if text == "" {
				text = defaultImageURLPrompt
				if len(urls) == 0 {
					text = defaultImageFilePrompt
				}
			}

			parts := append([]interfaces.ContentPart{interfaces.NewTextPart(text)}, images...)
			return a.submit(ctx, cmd, flags.modelOr(a.cfg.Models.Vision), flags, parts...)
		},
	}
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Prompt sent before the images")
	cmd.Flags().StringSliceVar(&urls, "url", nil, "Image URL (http, https or data:image/*); repeatable")
	cmd.Flags().StringSliceVar(&files, "file", nil, "Image path in the storage source; repeatable")
	cmd.Flags().StringVar(&detail, "detail", "", "Image detail hint for remote images: auto, low, high")
	flags.register(cmd)

	return cmd
}

// newMediaCmd builds a command that sends a prompt followed by one media file
func newMediaCmd(a *app, use, short, defaultPrompt string, kind interfaces.MediaKind, model func() string) *cobra.Command {
	flags := &generateFlags{}
	var (
		prompt string
		file   string
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(file) == "" {
				return fmt.Errorf("--file is required")
			}
			ctx := cmd.Context()

			media, err := encodeMedia(ctx, a.source, file, kind)
			if err != nil {
				return err
			}
			return a.submit(ctx, cmd, flags.modelOr(model()), flags,
				interfaces.NewTextPart(prompt), media)
		},
	}
	cmd.Flags().StringVarP(&prompt, "prompt", "p", defaultPrompt, "Prompt sent before the media")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Media path in the storage source")
	flags.register(cmd)

	return cmd
}

func newAudioCmd(a *app) *cobra.Command {
	return newMediaCmd(a, "audio", "Send a prompt with an audio recording", defaultAudioPrompt,
		interfaces.MediaKindAudio, func() string { return a.cfg.Models.Audio })
}

func newVideoCmd(a *app) *cobra.Command {
	return newMediaCmd(a, "video", "Send a prompt with a video", defaultVideoPrompt,
		interfaces.MediaKindVideo, func() string { return a.cfg.Models.Video })
}

func newInspectCmd(a *app) *cobra.Command {
	var (
		image    string
		audio    string
		notes    string
		imageURL string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Combine image, audio and notes into an inspection report",
		Long: `Run an inspection.

With --image and --audio, the image is analyzed, the audio transcribed and
both results synthesized into a report. With --notes and --image-url, the
notes and the image are analyzed together in a single request.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			pipeline, err := a.inspectionPipeline()
			if err != nil {
				return err
			}

			switch {
			case notes != "" && imageURL != "":
				resp, err := pipeline.AnalyzeWithNotes(ctx, notes, imageURL)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Analysis: %s\n", resp.Content)
				return nil

			case image != "" && audio != "":
				img, err := imagePart(ctx, a.source, image)
				if err != nil {
					return err
				}
				rec, err := encodeMedia(ctx, a.source, audio, interfaces.MediaKindAudio)
				if err != nil {
					return err
				}

				report, err := pipeline.Run(ctx, workflow.InspectionInput{Image: img, Audio: rec})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Analysis: %s\n", report.Evidence.Visual.Text)
				fmt.Fprintf(out, "Transcript: %s\n", report.Evidence.Transcript.Text)
				fmt.Fprintf(out, "Report: %s\n", report.Text)
				return nil

			default:
				return fmt.Errorf("either --image with --audio, or --notes with --image-url is required")
			}
		},
	}
	cmd.Flags().StringVar(&image, "image", "", "Image URL or path in the storage source")
	cmd.Flags().StringVar(&audio, "audio", "", "Audio path in the storage source")
	cmd.Flags().StringVar(&notes, "notes", "", "Inspection notes")
	cmd.Flags().StringVar(&imageURL, "image-url", "", "Remote image analyzed with --notes")

	return cmd
}

func (a *app) inspectionPipeline() (*workflow.InspectionPipeline, error) {
	opts := []workflow.InspectionOption{workflow.WithLogger(a.logger)}
	if a.cfg.PromptsFile != "" {
		prompts, err := workflow.LoadPrompts(a.cfg.PromptsFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, workflow.WithPrompts(prompts))
	}
	return workflow.NewInspectionPipeline(a.client, workflow.ModelsFromConfig(a.cfg.Models), opts...)
}
