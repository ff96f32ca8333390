package db

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"math"
	"os"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// DefaultKeywordPoints is used when a point value is missing or unparsable.
const DefaultKeywordPoints = 1

type keywordRecord struct {
	Text   string
	Points int
}

// ParsePoints converts a loosely typed point value (JSON number, numeric
// string) into an int, falling back to DefaultKeywordPoints. Values that do
// not fit the 32-bit points column also fall back.
func ParsePoints(value any) int {
	switch v := value.(type) {
	case int:
		return pointsInRange(int64(v))
	case int64:
		return pointsInRange(v)
	case float64:
		return pointsFromFloat(v)
	case string:
		trimmed := strings.TrimSpace(v)
		if parsed, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return pointsInRange(parsed)
		}
		if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return pointsFromFloat(parsed)
		}
	}
	return DefaultKeywordPoints
}

func pointsFromFloat(v float64) int {
	if math.IsNaN(v) || v < math.MinInt32 || v > math.MaxInt32 {
		return DefaultKeywordPoints
	}
	return int(v)
}

func pointsInRange(v int64) int {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return DefaultKeywordPoints
	}
	return int(v)
}

// NextOrderIndex returns one past the largest order index, or 0 for an empty list.
func NextOrderIndex(keywords []Keyword) int {
	if len(keywords) == 0 {
		return 0
	}
	maxOrder := keywords[0].OrderIndex
	for _, keyword := range keywords[1:] {
		if keyword.OrderIndex > maxOrder {
			maxOrder = keyword.OrderIndex
		}
	}
	return maxOrder + 1
}

// NextKeywordOrder computes the next order index for a game directly in the database.
func NextKeywordOrder(conn *gorm.DB, gameID uint) (int, error) {
	var maxOrder sql.NullInt64
	row := conn.Model(&Keyword{}).Where("game_id = ?", gameID).Select("MAX(order_index)").Row()
	if err := row.Scan(&maxOrder); err != nil {
		return 0, err
	}
	if !maxOrder.Valid {
		return 0, nil
	}
	return int(maxOrder.Int64) + 1, nil
}

// LoadKeywords reads "text,points" rows from a CSV and appends them to a game's keyword list.
// Rows whose text already exists for the game are skipped.
func LoadKeywords(conn *gorm.DB, gameID uint, path string) (int, error) {
	if conn == nil {
		return 0, errors.New("db connection is nil")
	}
	records, err := readKeywords(path)
	if err != nil {
		return 0, err
	}
	inserted := 0
	err = conn.Transaction(func(tx *gorm.DB) error {
		var keywords []Keyword
		if err := tx.Where("game_id = ?", gameID).Find(&keywords).Error; err != nil {
			return err
		}
		seen := make(map[string]bool, len(keywords))
		for _, keyword := range keywords {
			seen[keyword.Text] = true
		}
		for _, record := range records {
			if seen[record.Text] {
				continue
			}
			entry := Keyword{
				GameID:     gameID,
				Text:       record.Text,
				Points:     record.Points,
				OrderIndex: NextOrderIndex(keywords),
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			keywords = append(keywords, entry)
			seen[entry.Text] = true
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func readKeywords(path string) ([]keywordRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var records []keywordRecord
	for i, row := range rows {
		if i == 0 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "text") {
			continue
		}
		if len(row) == 0 {
			continue
		}
		text := strings.TrimSpace(row[0])
		if text == "" {
			continue
		}
		points := DefaultKeywordPoints
		if len(row) >= 2 {
			points = ParsePoints(row[1])
		}
		records = append(records, keywordRecord{Text: text, Points: points})
	}
	return records, nil
}
