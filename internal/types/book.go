package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Book is the minimal story record the quiz subsystem needs: a title and
// ordered pages of text. The platform's full book catalog (media, audio,
// playlists) lives elsewhere.
type Book struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	Author    string    `gorm:"column:author" json:"author"`
	AgeRange  string    `gorm:"column:age_range" json:"age_range"`
	Pages     []Page    `gorm:"constraint:OnDelete:CASCADE;foreignKey:BookID;references:ID" json:"pages,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Book) TableName() string { return "book" }

func (b *Book) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Page holds one page's text boxes in reading order. Text boxes may embed
// bracketed stage directions ("[excited]") which the prompt builder strips.
type Page struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	BookID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"book_id"`
	PageNumber int            `gorm:"column:page_number;not null" json:"page_number"`
	TextBoxes  datatypes.JSON `gorm:"column:text_boxes" json:"text_boxes"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

func (Page) TableName() string { return "page" }

// Texts decodes the page's text boxes. An empty column decodes to nil.
func (p *Page) Texts() ([]string, error) {
	if len(p.TextBoxes) == 0 {
		return nil, nil
	}
	var texts []string
	if err := json.Unmarshal(p.TextBoxes, &texts); err != nil {
		return nil, fmt.Errorf("decode text_boxes: %w", err)
	}
	return texts, nil
}

// StoryText concatenates every text box of every page in reading order.
// Stage-direction markup is left in place; the prompt builder strips it.
func (b *Book) StoryText() (string, error) {
	pages := make([]Page, len(b.Pages))
	copy(pages, b.Pages)
	sort.Slice(pages, func(i, j int) bool { return pages[i].PageNumber < pages[j].PageNumber })

	var parts []string
	for _, p := range pages {
		texts, err := p.Texts()
		if err != nil {
			return "", fmt.Errorf("page %d: %w", p.PageNumber, err)
		}
		parts = append(parts, texts...)
	}
	return strings.Join(parts, " "), nil
}

func (p *Page) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
