package embedcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const renderNoteMessageType = "embed.render_note"

// RenderNoteCommand renders one vault note, expanding every dynamic-embed
// block it contains.
type RenderNoteCommand struct {
	// Note is the link or vault relative path of the note to render.
	Note string `json:"note"`
	// Format selects html, markdown or terminal output. Empty uses the
	// configured default.
	Format string `json:"format,omitempty"`
	// Output is the file the result is written to. Empty writes to the
	// handler's writer.
	Output string `json:"output,omitempty"`
	// Strict turns displayed embed errors into a command failure.
	Strict bool `json:"strict,omitempty"`
}

// Type implements command.Message.
func (RenderNoteCommand) Type() string { return renderNoteMessageType }

// Validate ensures the note is present and the format is known.
func (cmd RenderNoteCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Note, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("embed.render_note.note_required", "note is required")
			}
			return nil
		})),
		validation.Field(&cmd.Format, validation.By(func(value any) error {
			switch strings.ToLower(strings.TrimSpace(value.(string))) {
			case "", "html", "markdown", "md", "terminal", "term":
				return nil
			default:
				return validation.NewError("embed.render_note.format_invalid", "format must be html, markdown or terminal")
			}
		})),
	)
}
