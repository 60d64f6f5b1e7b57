package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/fretsketch/dsl"
)

const sampleSheet = `
sheet Campfire v1 {
  meta {
    title: "Open chords for ${user.name}"
    size: 60mm
    keywords: [
      "guitar"
      "beginner"
    ]
  }

  // shared by every chord below
  defaults {
    instrument: guitar
    frets: 4
  }

  chord "C" {
    note 4 3 finger 3
    note 3 2 finger 2; note 1 1 finger 1
    open 2 0
    mute 5
  }

  chord "F" ukulele {
    start: 1
    custom: true
    note 0 x
    note 1 1 finger 1 barre 3 # barre across the top
  }
}
`

func TestParseSheet(t *testing.T) {
	doc, err := dsl.ParseString(sampleSheet)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Campfire" || doc.Version != "v1" {
		t.Fatalf("unexpected header: %s %s", doc.Name, doc.Version)
	}
	if len(doc.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(doc.Sections))
	}
	kinds := []string{"meta", "defaults", "chord", "chord"}
	for i, want := range kinds {
		if got := doc.Sections[i].Kind(); got != want {
			t.Fatalf("section %d: expected %s, got %s", i, want, got)
		}
	}

	meta := doc.Sections[0].Meta
	title := meta.Block.Statements[0].Assignment
	if title == nil || title.Key != "title" {
		t.Fatalf("expected title assignment, got %+v", meta.Block.Statements[0])
	}
	if got := title.Value.Text(); !strings.Contains(got, "${user.name}") {
		t.Fatalf("expected interpolation placeholder kept, got %s", got)
	}
	size := meta.Block.Statements[1].Assignment
	if size == nil || size.Value.Number == nil || *size.Value.Number != "60mm" {
		t.Fatalf("expected size 60mm, got %+v", size)
	}
	keywords := meta.Block.Statements[2].Assignment
	if keywords == nil || keywords.Value.Array == nil || len(keywords.Value.Array.Values) != 2 {
		t.Fatalf("expected 2 keywords, got %+v", keywords)
	}
	if got := keywords.Value.Text(); got != "guitar, beginner" {
		t.Fatalf("unexpected keywords text %q", got)
	}

	defaults := doc.Sections[1].Defaults
	inst := defaults.Block.Statements[0].Assignment
	if inst == nil || inst.Value.Ident == nil || *inst.Value.Ident != "guitar" {
		t.Fatalf("expected instrument guitar, got %+v", inst)
	}

	chords := doc.Chords()
	if len(chords) != 2 {
		t.Fatalf("expected 2 chords, got %d", len(chords))
	}
	c := chords[0]
	if c.Symbol != "C" {
		t.Fatalf("expected chord C, got %s", c.Symbol)
	}
	if len(c.Block.Statements) != 5 {
		t.Fatalf("expected 5 statements in chord C, got %d", len(c.Block.Statements))
	}
	note := c.Block.Statements[0].Command
	if note == nil || note.Name != "note" || len(note.Args) != 4 {
		t.Fatalf("unexpected note command %+v", note)
	}
	if note.Args[0].Value != "4" || note.Args[2].Value != "finger" || note.Args[0].Type != "Number" {
		t.Fatalf("unexpected note args %+v", note.Args)
	}
	open := c.Block.Statements[3].Command
	if open == nil || open.Name != "open" || len(open.Args) != 2 {
		t.Fatalf("unexpected open command %+v", open)
	}

	f := chords[1]
	if len(f.Params) != 1 || f.Params[0].Value != "ukulele" {
		t.Fatalf("expected ukulele param, got %+v", f.Params)
	}
	mute := f.Block.Statements[2].Command
	if mute == nil || mute.Args[1].Value != "x" || mute.Args[1].Type != "Ident" {
		t.Fatalf("expected muted note, got %+v", mute)
	}
	barre := f.Block.Statements[3].Command
	if barre == nil || len(barre.Args) != 6 {
		t.Fatalf("hash comment should end the barre note, got %+v", barre)
	}
}

func TestParseRejectsMissingHeader(t *testing.T) {
	if _, err := dsl.ParseString(`chord "C" { note 1 1 }`); err == nil {
		t.Fatalf("expected error for sheet without header")
	}
}

func TestParseRejectsUnclosedChord(t *testing.T) {
	_, err := dsl.Parse(strings.NewReader("sheet S v1 {\n chord \"C\" {\n note 1 1\n}\n"))
	if err == nil {
		t.Fatalf("expected error for unclosed sheet")
	}
}

func TestParseEmptySheet(t *testing.T) {
	doc, err := dsl.ParseString("sheet Empty v1 {}")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(doc.Chords()) != 0 {
		t.Fatalf("expected no chords")
	}
}
