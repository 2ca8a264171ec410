package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrDuplicateKey is returned by repositories when a unique constraint rejects a write.
var ErrDuplicateKey = errors.New("duplicate_key")

var duplicateKeyMarkers = []string{
	"duplicate key value violates unique constraint", // PostgreSQL 23505
	"Error 1062",               // MySQL
	"UNIQUE constraint failed", // SQLite 2067
}

func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, ErrDuplicateKey) {
		return true
	}

	msg := err.Error()
	for _, marker := range duplicateKeyMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// TranslateWriteErr normalizes driver-specific unique violations to ErrDuplicateKey.
func TranslateWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if IsDuplicateKeyErr(err) {
		return ErrDuplicateKey
	}
	return err
}
