package store_test

import (
	"testing"

	"github.com/geocoder89/neuralpulse/internal/domain/user"
	"github.com/geocoder89/neuralpulse/internal/store"
)

func TestEnsureAdmin(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.EnsureAdmin(store.AdminSeed{})
	if err != nil || created {
		t.Fatalf("empty seed: created=%v err=%v", created, err)
	}

	created, err = s.EnsureAdmin(store.AdminSeed{Username: "admin", Password: "other"})
	if err != nil || created {
		t.Fatalf("existing username: created=%v err=%v", created, err)
	}

	created, err = s.EnsureAdmin(store.AdminSeed{Username: "ops", Password: "opspass", Email: "ops@example.com"})
	if err != nil || !created {
		t.Fatalf("new admin: created=%v err=%v", created, err)
	}

	u, ok := s.Login("ops", "opspass")
	if !ok || u.Role != user.RoleAdmin || u.Name != "ops" {
		t.Fatalf("bootstrapped admin cannot log in or has wrong fields: %+v ok=%v", u, ok)
	}

	created, _ = s.EnsureAdmin(store.AdminSeed{Username: "ops", Password: "opspass"})
	if created {
		t.Fatalf("second bootstrap should be a no-op")
	}
}
