package article

import (
	"fmt"

	"github.com/geocoder89/neuralpulse/internal/domain/user"
)

// DeletePolicy decides who besides an admin may delete an article.
type DeletePolicy string

const (
	// DeleteByOwner lets the article's author delete it.
	DeleteByOwner DeletePolicy = "owner"
	// DeleteLegacy compares the article's authorId with the article's own
	// id, as the old dashboard did. In practice only admins can delete.
	DeleteLegacy DeletePolicy = "legacy"
)

func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch p := DeletePolicy(s); p {
	case DeleteByOwner, DeleteLegacy:
		return p, nil
	case "":
		return DeleteByOwner, nil
	default:
		return "", fmt.Errorf("unknown article delete policy %q", s)
	}
}

func CanEdit(actor user.User, a Article) bool {
	return actor.IsAdmin() || a.AuthorID == actor.ID
}

func CanDelete(policy DeletePolicy, actor user.User, a Article) bool {
	if actor.IsAdmin() {
		return true
	}

	if policy == DeleteLegacy {
		return a.AuthorID == a.ID
	}

	return a.AuthorID == actor.ID
}

// VisibleTo returns the articles actor manages: everything for admins, only
// their own for authors.
func VisibleTo(all []Article, actor user.User) []Article {
	if actor.IsAdmin() {
		return all
	}

	out := make([]Article, 0)
	for _, a := range all {
		if a.AuthorID == actor.ID {
			out = append(out, a)
		}
	}
	return out
}
