package embedcmd

import "testing"

func TestRenderNoteCommandValidate(t *testing.T) {
	valid := []RenderNoteCommand{
		{Note: "Home"},
		{Note: "notes/Home.md", Format: "markdown"},
		{Note: "Home", Format: "TERM", Output: "out/home.txt"},
	}
	for _, cmd := range valid {
		if err := cmd.Validate(); err != nil {
			t.Fatalf("expected %#v to validate, got %v", cmd, err)
		}
	}

	invalid := []RenderNoteCommand{
		{},
		{Note: "   "},
		{Note: "Home", Format: "pdf"},
	}
	for _, cmd := range invalid {
		if err := cmd.Validate(); err == nil {
			t.Fatalf("expected %#v to fail validation", cmd)
		}
	}

	if (RenderNoteCommand{}).Type() != "embed.render_note" {
		t.Fatalf("unexpected message type")
	}
}
