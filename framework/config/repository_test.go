package config_test

import (
	"reflect"
	"testing"

	"github.com/km-arc/go-laravel-testbench/framework/config"
)

func TestRepository_CopiesInput(t *testing.T) {
	items := map[string]any{"app.locale": "en"}
	repo := config.NewRepository(items)
	items["app.locale"] = "fr"

	if got := repo.String("app.locale", ""); got != "en" {
		t.Errorf("got %q want en", got)
	}
}

func TestRepository_GetSetHas(t *testing.T) {
	repo := config.NewRepository(nil)
	if repo.Has("k") {
		t.Error("Has() on an empty repository should be false")
	}

	repo.Set("k", 1)
	v, ok := repo.Get("k")
	if !ok || v != 1 {
		t.Errorf("Get(): got %v, %v", v, ok)
	}
}

func TestRepository_TypedAccessors(t *testing.T) {
	repo := config.NewRepository(map[string]any{
		"s":      "text",
		"n":      7,
		"nstr":   "12",
		"nfloat": float64(3),
		"b":      true,
		"bstr":   "false",
		"other":  []int{1},
	})

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"String", repo.String("s", "x"), "text"},
		{"String non-string", repo.String("n", "x"), "7"},
		{"String missing", repo.String("missing", "x"), "x"},
		{"Int", repo.Int("n", 0), 7},
		{"Int from string", repo.Int("nstr", 0), 12},
		{"Int from float", repo.Int("nfloat", 0), 3},
		{"Int fallback", repo.Int("other", -1), -1},
		{"Bool", repo.Bool("b", false), true},
		{"Bool from string", repo.Bool("bstr", true), false},
		{"Bool fallback", repo.Bool("other", true), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v want %v", tt.got, tt.want)
			}
		})
	}
}

func TestRepository_AllKeysFlush(t *testing.T) {
	repo := config.NewRepository(map[string]any{"b": 2, "a": 1})

	if got := repo.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Keys(): got %v", got)
	}
	all := repo.All()
	all["c"] = 3
	if repo.Has("c") {
		t.Error("All() should return a copy")
	}

	repo.Flush()
	if len(repo.All()) != 0 {
		t.Error("Flush() should empty the repository")
	}
}
