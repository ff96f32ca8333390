package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSessionFlashAndTeam(t *testing.T) {
	store := newSessionStore(openTestDB(t))

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	store.SetFlash(first, req, "No game found for that code.")
	if err := store.SetTeam(first, req, 3, 9); err != nil {
		t.Fatalf("set team: %v", err)
	}
	cookies := first.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != sessionCookieName {
		t.Fatalf("expected a single session cookie, got %#v", cookies)
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	w := httptest.NewRecorder()
	if team := store.GetTeam(w, next, 3); team != 9 {
		t.Fatalf("expected team 9, got %d", team)
	}
	if team := store.GetTeam(w, next, 4); team != 0 {
		t.Fatalf("expected no team for another game, got %d", team)
	}
	if flash := store.PopFlash(w, next); flash != "No game found for that code." {
		t.Fatalf("expected flash to survive SetTeam, got %q", flash)
	}
	if flash := store.PopFlash(w, next); flash != "" {
		t.Fatalf("expected flash to be consumed, got %q", flash)
	}
}
