// Package codegen renders the generated agent source bundle. Generation is a
// pure function of the agent configuration and the original request: the same
// inputs always produce byte-identical output, and the file path set is fixed
// regardless of configuration content.
package codegen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/HananB27/AiGENt/internal/agent"
)

// FileSet maps relative file paths to rendered contents.
type FileSet map[string]string

// Fixed bundle paths.
const (
	FileChatPage     = "index.html"
	FileChatEndpoint = "api/chat.js"
	FileManifest     = "package.json"
	FileReadme       = "README.md"
)

var (
	chatPageTml     = template.Must(template.New(FileChatPage).Parse(chatPageTemplate))
	chatEndpointTml = template.Must(template.New(FileChatEndpoint).Parse(chatEndpointTemplate))
	manifestTml     = template.Must(template.New(FileManifest).Parse(manifestTemplate))
	readmeTml       = template.Must(template.New(FileReadme).Parse(readmeTemplate))
	systemPromptTml = template.Must(template.New("system-prompt").Parse(systemPromptTemplate))
)

// view is the flat value set the templates render from.
type view struct {
	Name             string
	Description      string
	DescriptionJSON  string
	Greeting         string
	Placeholder      string
	PrimaryColor     string
	SecondaryColor   string
	Tone             string
	Style            string
	Expertise        string
	ResponseLength   string
	Creativity       int
	Formality        int
	CapabilityList   string
	Slug             string
	Request          string
	SystemPromptJSON string
}

// Generate renders the four-file agent bundle.
func Generate(request string, cfg *agent.Configuration) (FileSet, error) {
	v := buildView(request, cfg)

	systemPrompt, err := render(systemPromptTml, v)
	if err != nil {
		return nil, fmt.Errorf("render system prompt: %w", err)
	}
	promptJSON, err := json.Marshal(systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("encode system prompt: %w", err)
	}
	v.SystemPromptJSON = string(promptJSON)

	files := FileSet{}
	for path, tml := range map[string]*template.Template{
		FileChatPage:     chatPageTml,
		FileChatEndpoint: chatEndpointTml,
		FileManifest:     manifestTml,
		FileReadme:       readmeTml,
	} {
		content, err := render(tml, v)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", path, err)
		}
		files[path] = content
	}
	return files, nil
}

func render(tml *template.Template, v view) (string, error) {
	var buf bytes.Buffer
	if err := tml.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildView(request string, cfg *agent.Configuration) view {
	v := view{
		Name:           orDefault(cfg.Name, "AI Assistant"),
		Description:    orDefault(cfg.Description, "A helpful AI assistant."),
		Greeting:       orDefault(cfg.Design.Widget.Greeting, "Hi! How can I help you today?"),
		Placeholder:    orDefault(cfg.Design.Widget.Placeholder, "Type a message..."),
		PrimaryColor:   orDefault(cfg.Design.Theme.Primary, "#6366f1"),
		SecondaryColor: orDefault(cfg.Design.Theme.Secondary, "#8b5cf6"),
		Tone:           orDefault(cfg.Personality.Tone, "friendly"),
		Style:          orDefault(cfg.Personality.Style, "conversational"),
		Expertise:      orDefault(cfg.Personality.Expertise, "general assistance"),
		ResponseLength: orDefault(cfg.Personality.ResponseLength, "medium"),
		Creativity:     cfg.Personality.Creativity,
		Formality:      cfg.Personality.Formality,
		Request:        orDefault(strings.TrimSpace(request), "(not recorded)"),
	}

	caps := cfg.Capabilities.Skills
	if len(caps) == 0 {
		caps = []string{"communication", "problem-solving"}
	}
	v.CapabilityList = strings.Join(caps, ", ")
	v.Slug = Slugify(v.Name)

	descJSON, _ := json.Marshal(v.Description)
	v.DescriptionJSON = string(descJSON)
	return v
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a name into a hostname-safe slug.
func Slugify(name string) string {
	slug := slugRe.ReplaceAllString(strings.ToLower(name), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "ai-agent"
	}
	return slug
}
