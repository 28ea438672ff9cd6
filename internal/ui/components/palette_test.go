package components_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"skillsetu/internal/ui/components"
)

func typeInto(p components.Palette, text string) components.Palette {
	for _, r := range text {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func submit(t *testing.T, p components.Palette) (components.Palette, string) {
	t.Helper()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	msg, ok := cmd().(components.PaletteSubmitMsg)
	if !ok {
		t.Fatalf("expected PaletteSubmitMsg, got %T", cmd())
	}
	return p, msg.Input
}

func TestPaletteSubmitTrimsInput(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p = typeInto(p, "  open p1 ")
	p, got := submit(t, p)
	if got != "open p1" {
		t.Fatalf("submitted %q", got)
	}
	if p.Visible() {
		t.Fatal("palette should close after submit")
	}
}

func TestPaletteEscCancels(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(components.PaletteCancelMsg); !ok {
		t.Fatal("expected PaletteCancelMsg")
	}
	if p.Visible() {
		t.Fatal("palette should close on esc")
	}
}

func TestPaletteHistoryRecall(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	for _, c := range []string{"plans", "status", "status"} {
		p.Open()
		p = typeInto(p, c)
		p, _ = submit(t, p)
	}
	if got := p.History(); len(got) != 2 || got[0] != "plans" || got[1] != "status" {
		t.Fatalf("history = %v", got)
	}

	p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	if _, got := submit(t, p); got != "plans" {
		t.Fatalf("recalled %q, want plans", got)
	}
}

func TestPaletteMatchingByPrefix(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p = typeInto(p, "lo")
	got := p.Matching()
	if len(got) != 2 || got[0] != "login" || got[1] != "logout" {
		t.Fatalf("matching = %v", got)
	}
}

func TestFormErrorsClearOnEdit(t *testing.T) {
	t.Parallel()
	f := components.NewForm(
		components.NewField("email", "Email", "", false),
		components.NewField("password", "Password", "", true),
	)
	f.SetErrors(map[string]string{"email": "Email is required", "password": "Password is required"})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if f.Fields[0].Error != "" {
		t.Fatalf("email error kept after edit: %q", f.Fields[0].Error)
	}
	if f.Fields[1].Error == "" {
		t.Fatal("password error should remain")
	}
	f.Next()
	if !f.OnLast() {
		t.Fatal("expected focus on last field")
	}
	if f.Value("email") != "a" {
		t.Fatalf("email value = %q", f.Value("email"))
	}
}
