package services

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	roomNameMaxLen     = 255
	entryNameMaxLen    = 50
	originalNameMaxLen = 100
)

// Characters that are illegal in folder and file display names.
var validEntryName = regexp.MustCompile(`^[^/\\:*?"<>|]*$`)

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

// validateEntryName applies the shared folder/file name rules. It runs before
// any store access.
func validateEntryName(kind string, name string) *AppError {
	err := validation.Validate(name,
		validation.By(notBlank),
		validation.RuneLength(1, entryNameMaxLen).Error(fmt.Sprintf("cannot exceed %d characters", entryNameMaxLen)),
		validation.Match(validEntryName).Error(`cannot contain any of / \ : * ? " < > |`),
	)
	if err != nil {
		return newAppError(http.StatusBadRequest, fmt.Sprintf("%s name %v", kind, err), nil)
	}
	return nil
}

func validateRoomName(name string) *AppError {
	err := validation.Validate(name,
		validation.By(notBlank),
		validation.RuneLength(1, roomNameMaxLen).Error(fmt.Sprintf("cannot exceed %d characters", roomNameMaxLen)),
	)
	if err != nil {
		return newAppError(http.StatusBadRequest, fmt.Sprintf("data room name %v", err), nil)
	}
	return nil
}

// truncateOriginalName caps the uploaded filename kept as metadata.
func truncateOriginalName(name string) string {
	runes := []rune(name)
	if len(runes) <= originalNameMaxLen {
		return name
	}
	return string(runes[:originalNameMaxLen])
}
