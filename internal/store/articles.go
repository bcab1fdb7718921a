package store

import "github.com/geocoder89/neuralpulse/internal/domain/article"

// AddArticle stores a with a freshly generated id and returns the stored
// copy. Any id already on a is replaced; slugs are not deduplicated.
func (s *Store) AddArticle(a article.Article) article.Article {
	s.mutate("add_article", func(st *State) bool {
		a.ID = s.newID()
		st.Articles = append(st.Articles, a)
		return true
	})
	return a
}

func (s *Store) UpdateArticle(id string, patch article.Patch) (article.Article, error) {
	var updated article.Article
	found := false

	s.mutate("update_article", func(st *State) bool {
		for i := range st.Articles {
			if st.Articles[i].ID != id {
				continue
			}
			st.Articles[i] = patch.Apply(st.Articles[i])
			updated = st.Articles[i]
			found = true
			return true
		}
		return false
	})

	if !found {
		return article.Article{}, article.ErrNotFound
	}
	return updated, nil
}

// DeleteArticle removes the article; nothing that references it is touched.
func (s *Store) DeleteArticle(id string) error {
	found := false

	s.mutate("delete_article", func(st *State) bool {
		for i := range st.Articles {
			if st.Articles[i].ID == id {
				st.Articles = append(st.Articles[:i:i], st.Articles[i+1:]...)
				found = true
				return true
			}
		}
		return false
	})

	if !found {
		return article.ErrNotFound
	}
	return nil
}

func (s *Store) GetArticle(id string) (article.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.state.Articles {
		if a.ID == id {
			return a, true
		}
	}
	return article.Article{}, false
}

// PublishedBySlug returns the first published article carrying slug.
func (s *Store) PublishedBySlug(slug string) (article.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.state.Articles {
		if a.Slug == slug && a.Published {
			return a, true
		}
	}
	return article.Article{}, false
}

func (s *Store) Articles() []article.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]article.Article, len(s.state.Articles))
	copy(out, s.state.Articles)
	return out
}
