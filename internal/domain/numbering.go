package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// RecordPrefix identifies the workflow a record number belongs to.
type RecordPrefix string

const (
	PrefixLeave   RecordPrefix = "LR"
	PrefixBooking RecordPrefix = "CB"
	PrefixTicket  RecordPrefix = "HD"
)

const maxSequence = 99999

// FormatRecordNumber renders <PREFIX>-<YYYY>-<NNNNN>.
func FormatRecordNumber(prefix RecordPrefix, year, seq int) string {
	return fmt.Sprintf("%s-%04d-%05d", prefix, year, seq)
}

// RecordNumber is a parsed record number.
type RecordNumber struct {
	Prefix   RecordPrefix
	Year     int
	Sequence int
}

// ParseRecordNumber validates and splits a record number.
func ParseRecordNumber(s string) (RecordNumber, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return RecordNumber{}, fmt.Errorf("malformed record number %q", s)
	}
	prefix := RecordPrefix(parts[0])
	switch prefix {
	case PrefixLeave, PrefixBooking, PrefixTicket:
	default:
		return RecordNumber{}, fmt.Errorf("unknown record prefix %q", parts[0])
	}
	if len(parts[1]) != 4 || len(parts[2]) != 5 {
		return RecordNumber{}, fmt.Errorf("malformed record number %q", s)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return RecordNumber{}, fmt.Errorf("malformed year in %q", s)
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil || seq < 1 {
		return RecordNumber{}, fmt.Errorf("malformed sequence in %q", s)
	}
	return RecordNumber{Prefix: prefix, Year: year, Sequence: seq}, nil
}

// ValidSequence reports whether seq fits the five-digit field.
func ValidSequence(seq int) bool {
	return seq >= 1 && seq <= maxSequence
}
