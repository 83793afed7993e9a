package snapshots

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"resume-builder/resume/model"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryRepo())

	cases := map[string]model.ResumeData{
		"default": model.Default(),
		"empty":   model.Empty(),
		"sparse": {
			Contact:     model.Contact{FullName: "Ada"},
			Experiences: []model.Experience{{ID: "x", Highlights: []string{"", "  "}}},
			Education:   []model.Education{{ID: "e", GPA: "3.9"}},
			Skills:      []model.Skill{{ID: "s", Name: "", Level: model.LevelNone}},
			Template:    model.TemplateMinimal,
		},
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if err := store.SaveResume(ctx, "guest:"+name, data); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := store.LoadResume(ctx, "guest:"+name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if diff := cmp.Diff(data.Normalize(), got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadResumeFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	store := NewStore(repo)

	got, err := store.LoadResume(ctx, "guest:new")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(model.Default(), got); diff != "" {
		t.Fatalf("absent snapshot should load default:\n%s", diff)
	}

	for _, raw := range []string{`{not json`, `{"contact":{},"template":"gothic"}`, `[]`} {
		if err := repo.Put(ctx, "guest:bad", KeyResume, []byte(raw)); err != nil {
			t.Fatalf("put: %v", err)
		}
		got, err := store.LoadResume(ctx, "guest:bad")
		if err != nil {
			t.Fatalf("corrupt snapshot should not fail: %v", err)
		}
		if got.Contact.FullName != "Alexander Sterling" {
			t.Fatalf("expected default for %q, got %+v", raw, got.Contact)
		}
	}
}

type failingRepo struct{}

func (failingRepo) Get(context.Context, string, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}
func (failingRepo) Put(context.Context, string, string, []byte) error {
	return errors.New("disk on fire")
}

func TestStoreSurfacesStorageErrors(t *testing.T) {
	store := NewStore(failingRepo{})
	if _, err := store.LoadResume(context.Background(), "guest:a"); err == nil {
		t.Fatalf("expected load error")
	}
	if err := store.SaveResume(context.Background(), "guest:a", model.Empty()); err == nil {
		t.Fatalf("expected save error")
	}
	if _, err := store.Unlocked(context.Background(), "guest:a"); err == nil {
		t.Fatalf("expected unlock read error")
	}
}

func TestUnlockFlag(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryRepo())

	unlocked, err := store.Unlocked(ctx, "guest:a")
	if err != nil || unlocked {
		t.Fatalf("new owner should be locked: %v %v", unlocked, err)
	}
	if err := store.SetUnlocked(ctx, "guest:a"); err != nil {
		t.Fatalf("set: %v", err)
	}
	unlocked, _ = store.Unlocked(ctx, "guest:a")
	if !unlocked {
		t.Fatalf("expected unlocked after SetUnlocked")
	}
	if other, _ := store.Unlocked(ctx, "guest:b"); other {
		t.Fatalf("unlock must be per owner")
	}
}

func TestMemoryRepoValidatesKeys(t *testing.T) {
	repo := NewMemoryRepo()
	if err := repo.Put(context.Background(), "", KeyResume, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := repo.Get(context.Background(), "guest:a", KeyResume); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
