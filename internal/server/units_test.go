package server

import (
	"strings"
	"testing"

	"photo-hunt/internal/config"
	"photo-hunt/internal/db"
)

func TestPhotoExtension(t *testing.T) {
	cases := map[string]string{
		"robot.png":          "png",
		"IMG_0042.JPEG":      "jpeg",
		"archive.tar.gz":     "gz",
		"noextension":        "jpg",
		"":                   "jpg",
		"trailing.":          "jpg",
		"weird.p/g":          "jpg",
		`C:\photos\cat.webp`: "webp",
		"x.toolongextension": "jpg",
	}
	for filename, want := range cases {
		if got := photoExtension(filename); got != want {
			t.Fatalf("photoExtension(%q) = %q, want %q", filename, got, want)
		}
	}
}

func TestPhotoPathAndURL(t *testing.T) {
	path := photoPath("NEON1", "Red Team", 7, 42, "shot.PNG")
	if path != "NEON1/Red Team/7/42.png" {
		t.Fatalf("unexpected photo path %q", path)
	}

	srv := &Server{cfg: config.Default()}
	if url := srv.photoURL(path); url != "/photos/NEON1/Red%20Team/7/42.png" {
		t.Fatalf("unexpected local photo url %q", url)
	}
	if url := srv.photoURL(db.PhotoPending); url != "" {
		t.Fatalf("expected no url for a pending photo, got %q", url)
	}
	srv.cfg.PhotoBaseURL = "https://cdn.example.com/photos"
	if url := srv.photoURL(path); url != "https://cdn.example.com/photos/NEON1/Red%20Team/7/42.png" {
		t.Fatalf("unexpected cdn photo url %q", url)
	}
}

func TestScores(t *testing.T) {
	state := gameState{
		Teams: []db.Team{{ID: 1, Name: "Red"}, {ID: 2, Name: "Blue"}},
		Keywords: []db.Keyword{
			{ID: 10, Text: "Robot", Points: 5},
			{ID: 11, Text: "Lantern", Points: 2},
		},
		Claims: []db.Claim{
			{ID: 100, TeamID: 1, KeywordID: 10, PhotoPath: "NEON1/Red/10/100.jpg"},
			{ID: 101, TeamID: 1, KeywordID: 11, PhotoPath: db.PhotoPending},
			{ID: 102, TeamID: 2, KeywordID: 99, PhotoPath: "NEON1/Blue/99/102.jpg"},
		},
	}
	if got := teamScore(1, state.Claims, state.Keywords); got != 7 {
		t.Fatalf("expected Red score 7, got %d", got)
	}
	if got := teamScore(2, state.Claims, state.Keywords); got != 0 {
		t.Fatalf("expected claims on unknown keywords to score 0, got %d", got)
	}

	scores := buildScores(state)
	if len(scores) != 2 || scores[0].Name != "Red" || scores[0].Claims != 2 || scores[1].Score != 0 {
		t.Fatalf("unexpected scores %#v", scores)
	}
	if scores[0].Color == scores[1].Color {
		t.Fatalf("expected distinct team colors")
	}

	if !isClaimedByTeam(1, 10, state.Claims) || isClaimedByTeam(2, 10, state.Claims) {
		t.Fatalf("unexpected claimed state")
	}
	photos := teamPhotos(1, state.Claims)
	if len(photos) != 1 || photos[0].ID != 100 {
		t.Fatalf("expected only the stored photo, got %#v", photos)
	}
}

func TestValidateNames(t *testing.T) {
	valid := map[string]string{
		"  Red   Team ": "Red Team",
		"Café & Co":     "Café & Co",
		"ロボット":          "ロボット",
	}
	for input, want := range valid {
		got, err := validateTeamName(input)
		if err != nil || got != want {
			t.Fatalf("validateTeamName(%q) = %q, %v", input, got, err)
		}
	}
	for _, input := range []string{"", "   ", "Red/Blue", `back\slash`, "..", "<b>bold</b>", "tab\x07bell", "a very long team name that keeps going"} {
		if _, err := validateTeamName(input); err == nil {
			t.Fatalf("expected %q to be rejected", input)
		}
	}
}

func TestValidateGameCode(t *testing.T) {
	for _, code := range []string{"NEON1", "neon-1", "A_B"} {
		if _, err := validateGameCode(code); err != nil {
			t.Fatalf("expected %q to be valid: %v", code, err)
		}
	}
	for _, code := range []string{"", "has space", "ÜBER", "ABCDEFGHIJKLMNOPQ"} {
		if _, err := validateGameCode(code); err == nil {
			t.Fatalf("expected %q to be rejected", code)
		}
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := newRateLimiter(map[string]int{"claim": 2})
	if !limiter.Allow("1.2.3.4", "claim") || !limiter.Allow("1.2.3.4", "claim") {
		t.Fatalf("expected burst of 2 to pass")
	}
	if limiter.Allow("1.2.3.4", "claim") {
		t.Fatalf("expected third claim to be limited")
	}
	if !limiter.Allow("5.6.7.8", "claim") {
		t.Fatalf("expected other clients to have their own bucket")
	}
	if !limiter.Allow("1.2.3.4", "browse") {
		t.Fatalf("expected unlimited actions to pass")
	}
}

func TestNewGameCode(t *testing.T) {
	code, err := newGameCode()
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}
	if _, err := validateGameCode(code); err != nil || len(code) != gameCodeLength {
		t.Fatalf("unexpected generated code %q: %v", code, err)
	}
	if strings.ContainsAny(code, "01IO") {
		t.Fatalf("expected no look-alike characters in %q", code)
	}
}

func TestTeamColorsDistinct(t *testing.T) {
	seen := map[string]int{}
	for i := 0; i < 24; i++ {
		color := teamColor(i)
		if prev, ok := seen[color]; ok {
			t.Fatalf("teams %d and %d share color %s", prev, i, color)
		}
		seen[color] = i
	}
}

func TestServablePhotoKey(t *testing.T) {
	cases := map[string]bool{
		"NEON1/Red/3/7.png":     true,
		"NEON1/Wait.../3/7.png": true,
		"NEON1/../3/7.png":      false,
		"../secret":             false,
		"NEON1//3/7.png":        false,
		"":                      false,
		db.PhotoPending:         false,
	}
	for key, want := range cases {
		if got := servablePhotoKey(key); got != want {
			t.Fatalf("servablePhotoKey(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestPageWindow(t *testing.T) {
	page, perPage := pageQuery{}.window(20, 100)
	if page != 1 || perPage != 20 {
		t.Fatalf("expected defaults, got page=%d per_page=%d", page, perPage)
	}
	page, perPage = pageQuery{Page: 3, PerPage: 500}.window(20, 100)
	if page != 3 || perPage != 100 {
		t.Fatalf("expected capped per_page, got page=%d per_page=%d", page, perPage)
	}

	data := pageFor(9, 10, 25)
	if data.Page != 3 || data.TotalPages != 3 || !data.HasPrev || data.HasNext || data.PrevPage != 2 {
		t.Fatalf("expected clamp to last page, got %+v", data)
	}
	data = pageFor(1, 10, 0)
	if data.Page != 1 || data.TotalPages != 1 || data.HasPrev || data.HasNext {
		t.Fatalf("expected single empty page, got %+v", data)
	}
}
