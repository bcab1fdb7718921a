package article

import "errors"

var ErrNotFound = errors.New("article not found")

// Article mirrors the persisted article record. Date and ReadTime are display
// strings, Author is a denormalized copy of the author's name at write time.
type Article struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Author      string `json:"author"`
	AuthorID    string `json:"authorId"`
	ReadTime    string `json:"readTime"`
	Image       string `json:"image"`
	Slug        string `json:"slug"`
	Published   bool   `json:"published"`
}

type CreateArticleRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	Content     string `json:"content"`
	Category    string `json:"category" binding:"omitempty,max=80"`
	Date        string `json:"date" binding:"omitempty,max=40"`
	ReadTime    string `json:"readTime" binding:"omitempty,max=40"`
	Image       string `json:"image"`
	Slug        string `json:"slug" binding:"omitempty,max=200"`
	Published   bool   `json:"published"`
}

// Patch is a shallow partial update; nil fields are left untouched.
type Patch struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Content     *string `json:"content"`
	Category    *string `json:"category" binding:"omitempty,max=80"`
	Date        *string `json:"date" binding:"omitempty,max=40"`
	Author      *string `json:"author" binding:"omitempty,max=120"`
	AuthorID    *string `json:"authorId"`
	ReadTime    *string `json:"readTime" binding:"omitempty,max=40"`
	Image       *string `json:"image"`
	Slug        *string `json:"slug" binding:"omitempty,max=200"`
	Published   *bool   `json:"published"`
}

func (p Patch) Apply(a Article) Article {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Content != nil {
		a.Content = *p.Content
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.Author != nil {
		a.Author = *p.Author
	}
	if p.AuthorID != nil {
		a.AuthorID = *p.AuthorID
	}
	if p.ReadTime != nil {
		a.ReadTime = *p.ReadTime
	}
	if p.Image != nil {
		a.Image = *p.Image
	}
	if p.Slug != nil {
		a.Slug = *p.Slug
	}
	if p.Published != nil {
		a.Published = *p.Published
	}
	return a
}

// Status filter values accepted by listings.
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
)

func FilterStatus(in []Article, status string) []Article {
	if status != StatusPublished && status != StatusDraft {
		return in
	}
	want := status == StatusPublished

	out := make([]Article, 0, len(in))
	for _, a := range in {
		if a.Published == want {
			out = append(out, a)
		}
	}
	return out
}

func Published(in []Article) []Article {
	return FilterStatus(in, StatusPublished)
}
