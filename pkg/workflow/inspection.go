package workflow

import (
	"context"
	"fmt"

	"github.com/Ingenimax/multimodal-go/pkg/config"
	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
	"github.com/Ingenimax/multimodal-go/pkg/logging"
	"github.com/Ingenimax/multimodal-go/pkg/payload"
)

// Stage names used in logs and history
const (
	StageVisual = "visual_analysis"
	StageAudio  = "audio_transcript"
	StageReport = "report"
)

// InspectionInput is the media for one inspection run
type InspectionInput struct {
	// Image is a remote or inline image
	Image interfaces.ContentPart
	// Audio is an inline audio recording
	Audio interfaces.ContentPart
}

// VisualAnalysis is the output of the image stage
type VisualAnalysis struct {
	Text string
}

// AudioTranscript is the output of the audio stage
type AudioTranscript struct {
	Text string
}

// Evidence collects the typed results the report is built from
type Evidence struct {
	Visual     VisualAnalysis
	Transcript AudioTranscript
}

// Report is the synthesized inspection report
type Report struct {
	Text     string
	Model    string
	Evidence Evidence
}

// visualResult carries the audio forward to the next stage
type visualResult struct {
	visual VisualAnalysis
	audio  interfaces.ContentPart
}

// Models names the model used by each stage
type Models struct {
	Vision string
	Audio  string
	Report string
}

// ModelsFromConfig picks the stage models from configuration
func ModelsFromConfig(cfg config.ModelConfig) Models {
	return Models{
		Vision: cfg.Vision,
		Audio:  cfg.Audio,
		Report: cfg.Report,
	}
}

// InspectionPipeline runs image analysis, audio transcription and report
// synthesis in order. Any stage failure aborts the run.
type InspectionPipeline struct {
	submitter      *payload.Submitter
	audioSubmitter *payload.Submitter
	models         Models
	prompts        Prompts
	logger         logging.Logger
}

// InspectionOption configures an InspectionPipeline
type InspectionOption func(*inspectionOptions)

type inspectionOptions struct {
	audioClient interfaces.ModelClient
	prompts     *Prompts
	logger      logging.Logger
}

// WithAudioClient routes the audio stage to a different provider
func WithAudioClient(client interfaces.ModelClient) InspectionOption {
	return func(o *inspectionOptions) {
		o.audioClient = client
	}
}

// WithPrompts overrides the default prompts
func WithPrompts(prompts Prompts) InspectionOption {
	return func(o *inspectionOptions) {
		o.prompts = &prompts
	}
}

// WithLogger sets the logger
func WithLogger(logger logging.Logger) InspectionOption {
	return func(o *inspectionOptions) {
		o.logger = logger
	}
}

// NewInspectionPipeline creates a pipeline submitting through client
func NewInspectionPipeline(client interfaces.ModelClient, models Models, options ...InspectionOption) (*InspectionPipeline, error) {
	if client == nil {
		return nil, fmt.Errorf("model client is required")
	}
	if models.Vision == "" || models.Audio == "" || models.Report == "" {
		return nil, fmt.Errorf("vision, audio and report models are required")
	}

	opts := &inspectionOptions{logger: logging.NewNoOpLogger()}
	for _, opt := range options {
		opt(opts)
	}

	prompts := DefaultPrompts()
	if opts.prompts != nil {
		prompts = *opts.prompts
	}
	if err := prompts.Validate(); err != nil {
		return nil, err
	}

	audioClient := client
	if opts.audioClient != nil {
		audioClient = opts.audioClient
	}

	return &InspectionPipeline{
		submitter:      payload.NewSubmitter(client, payload.WithLogger(opts.logger)),
		audioSubmitter: payload.NewSubmitter(audioClient, payload.WithLogger(opts.logger)),
		models:         models,
		prompts:        prompts,
		logger:         opts.logger,
	}, nil
}

// Run executes all three stages. On failure the failing stage's error is
// returned as-is and no report is produced.
func (p *InspectionPipeline) Run(ctx context.Context, in InspectionInput) (*Report, error) {
	report, _, err := p.RunWithHistory(ctx, in)
	return report, err
}

// RunWithHistory is Run that also returns the per-stage records
func (p *InspectionPipeline) RunWithHistory(ctx context.Context, in InspectionInput) (*Report, []StageRecord, error) {
	if in.Image == nil || in.Audio == nil {
		return nil, nil, interfaces.NewValidationError("input", "inspection requires an image and an audio part")
	}

	history := &History{}
	pipeline := Then(
		Then(
			Named(StageVisual, history, p.logger, p.visualStage),
			Named(StageAudio, history, p.logger, p.audioStage),
		),
		Named(StageReport, history, p.logger, p.reportStage),
	)

	report, err := pipeline(ctx, in)
	if err != nil {
		return nil, history.Records(), err
	}
	return report, history.Records(), nil
}

func (p *InspectionPipeline) visualStage(ctx context.Context, in InspectionInput) (visualResult, error) {
	msg, err := payload.BuildMessage(interfaces.NewTextPart(p.prompts.Visual), in.Image)
	if err != nil {
		return visualResult{}, err
	}
	resp, err := p.submitter.Submit(ctx, p.models.Vision, msg)
	if err != nil {
		return visualResult{}, err
	}
	return visualResult{visual: VisualAnalysis{Text: resp.Content}, audio: in.Audio}, nil
}

func (p *InspectionPipeline) audioStage(ctx context.Context, in visualResult) (Evidence, error) {
	msg, err := payload.BuildMessage(interfaces.NewTextPart(p.prompts.Audio), in.audio)
	if err != nil {
		return Evidence{}, err
	}
	resp, err := p.audioSubmitter.Submit(ctx, p.models.Audio, msg)
	if err != nil {
		return Evidence{}, err
	}
	return Evidence{Visual: in.visual, Transcript: AudioTranscript{Text: resp.Content}}, nil
}

func (p *InspectionPipeline) reportStage(ctx context.Context, ev Evidence) (*Report, error) {
	text, err := render("report", p.prompts.Report, map[string]string{
		"Visual":     ev.Visual.Text,
		"Transcript": ev.Transcript.Text,
	})
	if err != nil {
		return nil, err
	}

	msg, err := payload.BuildMessage(interfaces.NewTextPart(text))
	if err != nil {
		return nil, err
	}
	resp, err := p.submitter.Submit(ctx, p.models.Report, msg)
	if err != nil {
		return nil, err
	}
	return &Report{Text: resp.Content, Model: resp.Model, Evidence: ev}, nil
}

// AnalyzeWithNotes sends inspection notes followed by a remote image in one message
func (p *InspectionPipeline) AnalyzeWithNotes(ctx context.Context, notes, imageURL string) (*interfaces.Response, error) {
	text, err := render("notes", p.prompts.Notes, map[string]string{"Notes": notes})
	if err != nil {
		return nil, err
	}

	msg, err := payload.BuildMessage(
		interfaces.NewTextPart(text),
		interfaces.NewImageURLPart(imageURL, ""),
	)
	if err != nil {
		return nil, err
	}
	return p.submitter.Submit(ctx, p.models.Report, msg)
}
