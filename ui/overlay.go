// Package ui holds the presentation model drawn over the arena: the running
// score and the start/restart dialog.
package ui

import (
	"slices"
	"strconv"
)

// Overlay is the in-memory model of the game's HUD and dialog. Renderers read
// it through Snapshot each frame.
type Overlay struct {
	score       int
	finalScore  int
	buttonLabel string
	headings    []string
	dialog      bool
}

// NewOverlay returns the overlay as it looks before the first game: dialog
// shown with a "Start" button.
func NewOverlay() *Overlay {
	return &Overlay{
		buttonLabel: "Start",
		dialog:      true,
	}
}

func (o *Overlay) SetScore(score int) {
	o.score = score
}

func (o *Overlay) ShowFinalScore(score int) {
	o.finalScore = score
}

func (o *Overlay) SetButtonLabel(label string) {
	o.buttonLabel = label
}

// EnsureHeading adds text to the dialog's headings unless it is already there.
func (o *Overlay) EnsureHeading(text string) {
	if slices.Contains(o.headings, text) {
		return
	}
	o.headings = append(o.headings, text)
}

func (o *Overlay) ShowDialog() {
	o.dialog = true
}

func (o *Overlay) HideDialog() {
	o.dialog = false
}

// DialogVisible reports whether the start/restart dialog is up.
func (o *Overlay) DialogVisible() bool {
	return o.dialog
}

// Snapshot is a copy of the overlay for drawing.
type Snapshot struct {
	Score         string
	FinalScore    string
	ButtonLabel   string
	Headings      []string
	DialogVisible bool
}

// Snapshot copies the overlay.
func (o *Overlay) Snapshot() Snapshot {
	return Snapshot{
		Score:         strconv.Itoa(o.score),
		FinalScore:    strconv.Itoa(o.finalScore),
		ButtonLabel:   o.buttonLabel,
		Headings:      slices.Clone(o.headings),
		DialogVisible: o.dialog,
	}
}

// DialogLines returns the dialog's text top to bottom: headings, final score,
// then the button label in brackets.
func (s Snapshot) DialogLines() []string {
	lines := slices.Clone(s.Headings)
	lines = append(lines, s.FinalScore, "Points", "["+s.ButtonLabel+"]")
	return lines
}
