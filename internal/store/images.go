package store

import "github.com/geocoder89/neuralpulse/internal/domain/image"

// AddImage stores img under a new id and returns that id, usable in GetImage
// as soon as AddImage returns.
func (s *Store) AddImage(img image.UploadedImage) string {
	s.mutate("add_image", func(st *State) bool {
		img.ID = s.newID()
		st.UploadedImages = append(st.UploadedImages, img)
		return true
	})
	return img.ID
}

// DeleteImage removes the library entry. Articles that embedded its URL keep
// the URL.
func (s *Store) DeleteImage(id string) error {
	found := false

	s.mutate("delete_image", func(st *State) bool {
		for i := range st.UploadedImages {
			if st.UploadedImages[i].ID == id {
				st.UploadedImages = append(st.UploadedImages[:i:i], st.UploadedImages[i+1:]...)
				found = true
				return true
			}
		}
		return false
	})

	if !found {
		return image.ErrNotFound
	}
	return nil
}

func (s *Store) GetImage(id string) (image.UploadedImage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, img := range s.state.UploadedImages {
		if img.ID == id {
			return img, true
		}
	}
	return image.UploadedImage{}, false
}

func (s *Store) Images() []image.UploadedImage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]image.UploadedImage, len(s.state.UploadedImages))
	copy(out, s.state.UploadedImages)
	return out
}
