package models

import (
	"encoding/json"
	"fmt"
)

// BlockKind represents the kind of a content block
type BlockKind string

const (
	BlockKindText     BlockKind = "text"
	BlockKindCode     BlockKind = "code"
	BlockKindLatex    BlockKind = "latex"
	BlockKindImage    BlockKind = "image"
	BlockKindVideo    BlockKind = "video"
	BlockKindMarkdown BlockKind = "markdown"
)

// ContentBlock represents one typed unit of lesson content
type ContentBlock struct {
	ID       int             `json:"id"`
	LessonID int             `json:"lessonId"`
	Kind     BlockKind       `json:"kind"`
	Position int             `json:"position"`
	Payload  json.RawMessage `json:"payload"`
}

// ContentBlockResponse represents a content block in API responses
type ContentBlockResponse struct {
	Kind     BlockKind       `json:"kind"`
	Position int             `json:"position"`
	Payload  json.RawMessage `json:"payload"`
}

// TextBlockPayload is the payload for text blocks
type TextBlockPayload struct {
	Text string `json:"text"`
}

// CodeBlockPayload is the payload for code blocks
type CodeBlockPayload struct {
	Source          string `json:"source"`
	Language        string `json:"language"`
	ShowLineNumbers bool   `json:"showLineNumbers"`
}

// LatexBlockPayload is the payload for LaTeX blocks
type LatexBlockPayload struct {
	Expression string `json:"expression"`
}

// ImageBlockPayload is the payload for image blocks
type ImageBlockPayload struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// VideoBlockPayload is the payload for video blocks
type VideoBlockPayload struct {
	URL string `json:"url"`
}

// MarkdownBlockPayload is the payload for markdown blocks
type MarkdownBlockPayload struct {
	Markdown string `json:"markdown"`
}

// DecodePayload decodes the raw payload into the typed struct for the block's kind.
// Unknown kinds and malformed payloads are rejected so they surface at write
// time instead of render time.
func (b *ContentBlock) DecodePayload() (any, error) {
	switch b.Kind {
	case BlockKindText:
		var p TextBlockPayload
		if err := json.Unmarshal(b.Payload, &p); err != nil {
			return nil, fmt.Errorf("failed to decode text payload: %w", err)
		}
		if p.Text == "" {
			return nil, fmt.Errorf("text block requires non-empty text")
		}
		return &p, nil
	case BlockKindCode:
		var p CodeBlockPayload
		if err := json.Unmarshal(b.Payload, &p); err != nil {
			return nil, fmt.Errorf("failed to decode code payload: %w", err)
		}
		if p.Source == "" {
			return nil, fmt.Errorf("code block requires non-empty source")
		}
		return &p, nil
	case BlockKindLatex:
		var p LatexBlockPayload
		if err := json.Unmarshal(b.Payload, &p); err != nil {
			return nil, fmt.Errorf("failed to decode latex payload: %w", err)
		}
		if p.Expression == "" {
			return nil, fmt.Errorf("latex block requires non-empty expression")
		}
		return &p, nil
	case BlockKindImage:
		var p ImageBlockPayload
		if err := json.Unmarshal(b.Payload, &p); err != nil {
			return nil, fmt.Errorf("failed to decode image payload: %w", err)
		}
		if p.URL == "" {
			return nil, fmt.Errorf("image block requires non-empty url")
		}
		return &p, nil
	case BlockKindVideo:
		var p VideoBlockPayload
		if err := json.Unmarshal(b.Payload, &p); err != nil {
			return nil, fmt.Errorf("failed to decode video payload: %w", err)
		}
		if p.URL == "" {
			return nil, fmt.Errorf("video block requires non-empty url")
		}
		return &p, nil
	case BlockKindMarkdown:
		var p MarkdownBlockPayload
		if err := json.Unmarshal(b.Payload, &p); err != nil {
			return nil, fmt.Errorf("failed to decode markdown payload: %w", err)
		}
		if p.Markdown == "" {
			return nil, fmt.Errorf("markdown block requires non-empty markdown")
		}
		return &p, nil
	default:
		return nil, fmt.Errorf("unknown block kind: %s", b.Kind)
	}
}

// Validate checks that the block kind is known and the payload decodes cleanly
func (b *ContentBlock) Validate() error {
	if b.Position < 0 {
		return fmt.Errorf("block position must be non-negative")
	}
	_, err := b.DecodePayload()
	return err
}
