package article

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/geocoder89/neuralpulse/internal/domain/user"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const displayDateLayout = "January 2, 2006"

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// NewFromCreateRequest builds an article owned by author. The id is left
// empty; the store assigns it.
func NewFromCreateRequest(req CreateArticleRequest, author user.User, now time.Time) Article {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = GenerateSlug(req.Title)
	}

	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = DisplayDate(now)
	}

	return Article{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Category:    req.Category,
		Date:        date,
		Author:      author.Name,
		AuthorID:    author.ID,
		ReadTime:    req.ReadTime,
		Image:       req.Image,
		Slug:        slug,
		Published:   req.Published,
	}
}

func DisplayDate(t time.Time) string {
	return t.Format(displayDateLayout)
}

// GenerateSlug lowercases the title, folds accented letters to their base
// form, drops punctuation and joins words with dashes.
func GenerateSlug(title string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		title,
	)
	if err != nil {
		folded = title
	}

	s := strings.ToLower(folded)
	s = nonWordRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), "-")

	return strings.Trim(s, "-")
}
