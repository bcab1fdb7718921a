package article

// Related picks up to n other published articles for post, preferring the
// same category and topping up from other categories in store order.
func Related(all []Article, post Article, n int) []Article {
	if n <= 0 {
		return []Article{}
	}

	out := make([]Article, 0, n)
	for _, a := range all {
		if len(out) == n {
			return out
		}
		if a.Published && a.ID != post.ID && a.Category == post.Category {
			out = append(out, a)
		}
	}

	for _, a := range all {
		if len(out) == n {
			break
		}
		if a.Published && a.ID != post.ID && a.Category != post.Category {
			out = append(out, a)
		}
	}

	return out
}
