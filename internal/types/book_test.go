package types

import (
	"testing"

	"gorm.io/datatypes"
)

func TestBook_StoryText_PageOrder(t *testing.T) {
	book := Book{
		Title: "Milo and the Tiny Boat",
		Pages: []Page{
			{PageNumber: 2, TextBoxes: datatypes.JSON(`["He sailed it across the pond."]`)},
			{PageNumber: 1, TextBoxes: datatypes.JSON(`["Milo found a tiny boat.", "[excited] It was red!"]`)},
			{PageNumber: 3, TextBoxes: datatypes.JSON(`["Then he went home."]`)},
		},
	}

	got, err := book.StoryText()
	if err != nil {
		t.Fatal(err)
	}
	want := "Milo found a tiny boat. [excited] It was red! He sailed it across the pond. Then he went home."
	if got != want {
		t.Errorf("story text out of order:\n got %q\nwant %q", got, want)
	}
}

func TestBook_StoryText_EmptyPages(t *testing.T) {
	book := Book{Title: "Blank"}
	got, err := book.StoryText()
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("expected empty story text, got %q", got)
	}
}

func TestPage_Texts_BadJSON(t *testing.T) {
	p := Page{TextBoxes: datatypes.JSON(`{"not": "an array"}`)}
	if _, err := p.Texts(); err == nil {
		t.Fatal("expected a decode error")
	}
}
