package db

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	if err := Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestLoadKeywordsAppendsInOrder(t *testing.T) {
	conn := openTestDB(t)
	game := Game{Code: "NEON1", Title: "Neon Night", Status: GameStatusCreated}
	if err := conn.Create(&game).Error; err != nil {
		t.Fatalf("create game: %v", err)
	}
	if err := conn.Create(&Keyword{GameID: game.ID, Text: "Robot", Points: 5, OrderIndex: 4}).Error; err != nil {
		t.Fatalf("create keyword: %v", err)
	}

	path := filepath.Join(t.TempDir(), "keywords.csv")
	if err := os.WriteFile(path, []byte("text,points\nRobot,9\nLantern,2\nMural,x\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	inserted, err := LoadKeywords(conn, game.ID, path)
	if err != nil {
		t.Fatalf("load keywords: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("expected 2 inserted keywords, got %d", inserted)
	}

	var keywords []Keyword
	if err := conn.Where("game_id = ?", game.ID).Order("order_index asc").Find(&keywords).Error; err != nil {
		t.Fatalf("find keywords: %v", err)
	}
	if len(keywords) != 3 {
		t.Fatalf("expected 3 keywords, got %d", len(keywords))
	}
	if keywords[1].Text != "Lantern" || keywords[1].OrderIndex != 5 {
		t.Fatalf("unexpected second keyword %#v", keywords[1])
	}
	if keywords[2].Text != "Mural" || keywords[2].OrderIndex != 6 || keywords[2].Points != DefaultKeywordPoints {
		t.Fatalf("unexpected third keyword %#v", keywords[2])
	}
}

func TestNextKeywordOrderEmptyGame(t *testing.T) {
	conn := openTestDB(t)
	order, err := NextKeywordOrder(conn, 42)
	if err != nil {
		t.Fatalf("next order: %v", err)
	}
	if order != 0 {
		t.Fatalf("expected 0 for a game without keywords, got %d", order)
	}
}

func TestClaimUniquePerTeamKeyword(t *testing.T) {
	conn := openTestDB(t)
	game := Game{Code: "NEON1", Title: "Neon Night", Status: GameStatusRunning}
	if err := conn.Create(&game).Error; err != nil {
		t.Fatalf("create game: %v", err)
	}
	team := Team{GameID: game.ID, Name: "Red"}
	if err := conn.Create(&team).Error; err != nil {
		t.Fatalf("create team: %v", err)
	}
	keyword := Keyword{GameID: game.ID, Text: "Robot", Points: 5}
	if err := conn.Create(&keyword).Error; err != nil {
		t.Fatalf("create keyword: %v", err)
	}
	first := Claim{GameID: game.ID, TeamID: team.ID, KeywordID: keyword.ID, PhotoPath: PhotoPending}
	if err := conn.Create(&first).Error; err != nil {
		t.Fatalf("create claim: %v", err)
	}
	second := Claim{GameID: game.ID, TeamID: team.ID, KeywordID: keyword.ID, PhotoPath: PhotoPending}
	if err := conn.Create(&second).Error; err == nil {
		t.Fatalf("expected duplicate claim to be rejected")
	}
}
