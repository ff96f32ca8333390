package server

import (
	"errors"
	"fmt"
	"html"
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

const (
	maxTitleLength    = 80
	maxKeywordLength  = 60
	maxTeamNameLength = 32
	maxGameCodeLength = 16
	maxFilenameLength = 255
)

var (
	validatorOnce sync.Once
	markupPolicy  = bluemonday.StrictPolicy()
)

func registerValidators() {
	validatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = engine.RegisterValidation("title", func(fl validator.FieldLevel) bool {
			_, err := validateTitle(fl.Field().String())
			return err == nil
		})
		_ = engine.RegisterValidation("keyword", func(fl validator.FieldLevel) bool {
			_, err := validateKeyword(fl.Field().String())
			return err == nil
		})
		_ = engine.RegisterValidation("teamname", func(fl validator.FieldLevel) bool {
			_, err := validateTeamName(fl.Field().String())
			return err == nil
		})
		_ = engine.RegisterValidation("gamecode", func(fl validator.FieldLevel) bool {
			_, err := validateGameCode(fl.Field().String())
			return err == nil
		})
		_ = engine.RegisterValidation("gamestatus", func(fl validator.FieldLevel) bool {
			_, err := validateStatus(fl.Field().String())
			return err == nil
		})
	})
}

func validateTitle(text string) (string, error) {
	return validateText("title", text, maxTitleLength)
}

func validateKeyword(text string) (string, error) {
	return validateText("keyword", text, maxKeywordLength)
}

// validateTeamName also rejects "/" since team names become storage path segments.
func validateTeamName(text string) (string, error) {
	name, err := validateText("team name", text, maxTeamNameLength)
	if err != nil {
		return "", err
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", errors.New("team name contains unsupported characters")
	}
	return name, nil
}

// validateGameCode accepts codes exactly as typed; lookups are case-sensitive.
func validateGameCode(code string) (string, error) {
	if code == "" {
		return "", errors.New("game code is required")
	}
	if len(code) > maxGameCodeLength {
		return "", fmt.Errorf("game code must be %d characters or fewer", maxGameCodeLength)
	}
	for _, r := range code {
		if r >= 'a' && r <= 'z' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		if r == '-' || r == '_' {
			continue
		}
		return "", errors.New("game code contains unsupported characters")
	}
	return code, nil
}

func validateStatus(status string) (string, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !slices.Contains(gameStatuses, status) {
		return "", fmt.Errorf("status must be one of %s", strings.Join(gameStatuses, ", "))
	}
	return status, nil
}

func validateText(label, text string, maxLen int) (string, error) {
	trimmed := normalizeText(text)
	if trimmed == "" {
		return "", fmt.Errorf("%s is required", label)
	}
	if len([]rune(trimmed)) > maxLen {
		return "", fmt.Errorf("%s must be %d characters or fewer", label, maxLen)
	}
	if !isSafeText(trimmed) {
		return "", fmt.Errorf("%s contains unsupported characters", label)
	}
	return trimmed, nil
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}

// isSafeText allows any printable text (keywords are often not ASCII) but
// rejects control characters and anything the strict HTML policy would alter.
func isSafeText(text string) bool {
	for _, r := range text {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return html.UnescapeString(markupPolicy.Sanitize(text)) == text
}
