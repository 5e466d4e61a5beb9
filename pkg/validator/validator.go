package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	minProjectNameLen = 1
	maxProjectNameLen = 100
	maxDescriptionLen = 500
	maxFileNameLen    = 255
	maxFileIDLen      = 64
	asciiControlStart = 32
	asciiDelete       = 127

	errProjectNameLengthFmt    = "Project name must be between %d and %d characters"
	errDescriptionMaxLengthFmt = "Description must be less than %d characters"
	errFileNameEmptyFmt        = "file name cannot be empty"
	errFileNameMaxLengthFmt    = "file name must not exceed %d characters"
	errFileNameControlCharsFmt = "file name cannot contain control characters"
	errFileIDEmptyFmt          = "file id cannot be empty"
	errFileIDMaxLengthFmt      = "file id must not exceed %d characters"
	errFileIDControlCharsFmt   = "file id cannot contain control characters"
)

// ProjectName expects an already trimmed name.
func ProjectName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < minProjectNameLen || n > maxProjectNameLen {
		return fmt.Errorf(errProjectNameLengthFmt, minProjectNameLen, maxProjectNameLen)
	}

	return nil
}

func Description(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return fmt.Errorf(errDescriptionMaxLengthFmt, maxDescriptionLen)
	}

	return nil
}

// FileName accepts any non-blank name without control characters. Names are
// labels inside a project document, not filesystem paths.
func FileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf(errFileNameEmptyFmt)
	}

	if utf8.RuneCountInString(name) > maxFileNameLen {
		return fmt.Errorf(errFileNameMaxLengthFmt, maxFileNameLen)
	}

	if hasControlChars(name) {
		return fmt.Errorf(errFileNameControlCharsFmt)
	}

	return nil
}

func FileID(id string) error {
	if id == "" {
		return fmt.Errorf(errFileIDEmptyFmt)
	}

	if len(id) > maxFileIDLen {
		return fmt.Errorf(errFileIDMaxLengthFmt, maxFileIDLen)
	}

	if hasControlChars(id) {
		return fmt.Errorf(errFileIDControlCharsFmt)
	}

	return nil
}

func hasControlChars(s string) bool {
	for _, char := range s {
		if char < asciiControlStart || char == asciiDelete {
			return true
		}
	}
	return false
}
