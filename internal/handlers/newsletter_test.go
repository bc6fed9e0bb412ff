package handlers

import (
	"regexp"
	"testing"
)

func TestGenerateDiscountCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^LUXE-[0-9A-F]{8}$`)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := generateDiscountCode()
		if !pattern.MatchString(code) {
			t.Fatalf("discount code %q has unexpected format", code)
		}
		seen[code] = true
	}
	if len(seen) < 90 {
		t.Fatalf("discount codes collide too often: %d unique of 100", len(seen))
	}
}

func TestParsePaginationParams(t *testing.T) {
	page, limit, err := parsePaginationParams("2", "50")
	if err != nil || page != 2 || limit != 50 {
		t.Fatalf("got page=%d limit=%d err=%v", page, limit, err)
	}

	page, limit, err = parsePaginationParams("", "")
	if err != nil || page != 1 || limit != 20 {
		t.Fatalf("defaults: got page=%d limit=%d err=%v", page, limit, err)
	}

	if _, _, err := parsePaginationParams("0", "10"); err == nil {
		t.Fatal("expected error for page 0")
	}
	if _, _, err := parsePaginationParams("1", "nope"); err == nil {
		t.Fatal("expected error for non-numeric limit")
	}
}
