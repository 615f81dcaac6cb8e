package movie

import "testing"

func TestCloneIsIndependent(t *testing.T) {
	original := Movie{
		Sign: Sign{Width: 320, Height: 64, Theme: "default"},
		Data: map[string]any{
			"nested": map[string]any{"color": "#ffffff"},
		},
		Screenplay: []ScreenplayEntry{
			{Timeline: "hello", Start: 0, Params: map[string]any{"text": "Hello, World!"}},
		},
	}

	clone := original.Clone()

	clone.Data["nested"].(map[string]any)["color"] = "#000000"
	clone.Screenplay[0].Params["text"] = "mutated"
	clone.Screenplay[0].Timeline = "mutated"

	if original.Data["nested"].(map[string]any)["color"] != "#ffffff" {
		t.Fatal("clone mutation leaked into original data")
	}
	if original.Screenplay[0].Params["text"] != "Hello, World!" {
		t.Fatal("clone mutation leaked into original params")
	}
	if original.Screenplay[0].Timeline != "hello" {
		t.Fatal("clone mutation leaked into original screenplay")
	}
}
