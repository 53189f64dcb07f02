package validate

import (
	"testing"

	"shopbot/internal/domain"
)

func TestBracketArgs(t *testing.T) {
	got := BracketArgs("/add_product [Acme] [Power Banks] [PB 10000] [42] [ozon:https://o/x wb:https://w/y] [7]")
	want := []string{"Acme", "Power Banks", "PB 10000", "42", "ozon:https://o/x wb:https://w/y", "7"}
	if len(got) != len(want) {
		t.Fatalf("want %d args, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("arg %d: want %q, got %q", i, want[i], got[i])
		}
	}

	if n := len(BracketArgs("/delete_product Acme Widgets")); n != 0 {
		t.Fatalf("want no args without brackets, got %d", n)
	}
	if got := BracketArgs("[]"); len(got) != 1 || got[0] != "" {
		t.Fatalf("empty brackets should yield one empty arg, got %q", got)
	}
}

func TestMessageRefAndPhotoRef(t *testing.T) {
	if n, ok := MessageRef(" 12345 "); !ok || n != 12345 {
		t.Fatalf("want 12345, got %d ok=%v", n, ok)
	}
	if _, ok := MessageRef("12a"); ok {
		t.Fatal("non-numeric message ref accepted")
	}
	if s, ok := PhotoRef("007"); !ok || s != "7" {
		t.Fatalf("want normalized 7, got %q ok=%v", s, ok)
	}
	if _, ok := PhotoRef("photo"); ok {
		t.Fatal("non-numeric photo ref accepted")
	}
}

func TestLinks(t *testing.T) {
	got := Links("ozon:https://ozon.ru/p/1 shop:https://x wb:https://wb.ru/p/2 broken")
	if got[domain.Ozon] != "https://ozon.ru/p/1" {
		t.Fatalf("ozon: %q", got[domain.Ozon])
	}
	if got[domain.Wildberries] != "https://wb.ru/p/2" {
		t.Fatalf("wb: %q", got[domain.Wildberries])
	}
	if _, ok := got[domain.YandexMkt]; ok {
		t.Fatal("ym should be absent")
	}
	if len(got) != 2 {
		t.Fatalf("unknown prefixes must be skipped, got %v", got)
	}
}

func TestUserID(t *testing.T) {
	if id, ok := UserID("5550001"); !ok || id != 5550001 {
		t.Fatalf("want 5550001, got %d ok=%v", id, ok)
	}
	for _, bad := range []string{"", "0", "abc"} {
		if _, ok := UserID(bad); ok {
			t.Fatalf("%q accepted as user id", bad)
		}
	}
}
