// Command slot inspects and resets the persisted store snapshot.
//
//	slot dump            print the snapshot as indented JSON
//	slot reset -force    overwrite it with the demo seed
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/geocoder89/neuralpulse/internal/config"
	"github.com/geocoder89/neuralpulse/internal/domain/article"
	"github.com/geocoder89/neuralpulse/internal/domain/image"
	"github.com/geocoder89/neuralpulse/internal/observability"
	"github.com/geocoder89/neuralpulse/internal/repo/backend"
	"github.com/geocoder89/neuralpulse/internal/repo/slot"
	"github.com/geocoder89/neuralpulse/internal/security"
	"github.com/geocoder89/neuralpulse/internal/store"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "slot:", err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: slot <dump|reset> [flags]")
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return errors.New("missing command")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := observability.NewLogger(cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch args[0] {
	case "dump":
		fs := flag.NewFlagSet("dump", flag.ContinueOnError)
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		kv, closeKV, err := backend.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeKV()

		return dump(ctx, store.NewSlotPersister(kv, cfg.Persist.Key), out)

	case "reset":
		fs := flag.NewFlagSet("reset", flag.ContinueOnError)
		force := fs.Bool("force", false, "overwrite the stored snapshot")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if !*force {
			return errors.New("reset overwrites all users, articles and images; pass -force")
		}

		hasher, err := security.NewHasher(cfg.Auth.PasswordHasher)
		if err != nil {
			return err
		}

		kv, closeKV, err := backend.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeKV()

		if err := reset(ctx, store.NewSlotPersister(kv, cfg.Persist.Key), hasher); err != nil {
			return err
		}
		log.Info("slot reset", "backend", cfg.Persist.Backend, "key", cfg.Persist.Key)
		return nil

	default:
		usage(out)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func dump(ctx context.Context, p *store.SlotPersister, out io.Writer) error {
	st, err := p.Load(ctx)
	if err != nil {
		if errors.Is(err, slot.ErrNotFound) {
			return fmt.Errorf("slot %q is empty", p.Key())
		}
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(st)
}

func reset(ctx context.Context, p *store.SlotPersister, hasher security.Hasher) error {
	users, err := store.HashedDemoUsers(hasher)
	if err != nil {
		return err
	}

	return p.Save(ctx, store.State{
		Users:          users,
		Articles:       []article.Article{},
		UploadedImages: []image.UploadedImage{},
	})
}
