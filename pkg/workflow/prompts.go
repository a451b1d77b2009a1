package workflow

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Prompts holds the instructions sent with each inspection stage.
// Report and Notes are text/template strings.
type Prompts struct {
	Visual string `yaml:"visual"`
	Audio  string `yaml:"audio"`
	Report string `yaml:"report"`
	Notes  string `yaml:"notes"`
}

// DefaultPrompts returns the built-in inspection prompts
func DefaultPrompts() Prompts {
	return Prompts{
		Visual: "Describe any structural issues visible.",
		Audio:  "Transcribe this inspection audio.",
		Report: `Based on the following inspection data, provide a comprehensive report:

Visual Analysis: {{.Visual}}

Audio Notes: {{.Transcript}}

Provide:
1. Summary of findings
2. Risk assessment
3. Recommended actions
`,
		Notes: "Inspection Notes: {{.Notes}} Please analyze the image and provide recommendations.",
	}
}

// LoadPrompts reads a YAML file; keys left out keep their defaults
func LoadPrompts(path string) (Prompts, error) {
	prompts := DefaultPrompts()

	data, err := os.ReadFile(path)
	if err != nil {
		return prompts, fmt.Errorf("failed to read prompts file: %w", err)
	}
	if err := yaml.Unmarshal(data, &prompts); err != nil {
		return prompts, fmt.Errorf("failed to parse prompts file: %w", err)
	}
	if err := prompts.Validate(); err != nil {
		return prompts, err
	}
	return prompts, nil
}

// Validate checks that every prompt is set and every template parses
func (p Prompts) Validate() error {
	for name, value := range map[string]string{"visual": p.Visual, "audio": p.Audio, "report": p.Report, "notes": p.Notes} {
		if value == "" {
			return fmt.Errorf("prompt %q is empty", name)
		}
	}
	if _, err := template.New("report").Parse(p.Report); err != nil {
		return fmt.Errorf("invalid report template: %w", err)
	}
	if _, err := template.New("notes").Parse(p.Notes); err != nil {
		return fmt.Errorf("invalid notes template: %w", err)
	}
	return nil
}

func render(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("invalid %s template: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return buf.String(), nil
}
