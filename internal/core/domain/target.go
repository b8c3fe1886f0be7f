package domain

import (
	"encoding/hex"
	"strings"
)

// TargetKind tags which key a TargetRef resolves by.
type TargetKind int

const (
	TargetByID TargetKind = iota + 1
	TargetByEmail
)

func (k TargetKind) String() string {
	switch k {
	case TargetByID:
		return "id"
	case TargetByEmail:
		return "email"
	default:
		return "unknown"
	}
}

// TargetRef names a user either by primary key or by email.
type TargetRef struct {
	Kind  TargetKind
	Value string
}

// ByID returns a reference resolving by primary key.
func ByID(id string) TargetRef { return TargetRef{Kind: TargetByID, Value: id} }

// ByEmail returns a reference resolving by email.
func ByEmail(email string) TargetRef { return TargetRef{Kind: TargetByEmail, Value: email} }

// ParseTargetRef classifies a path identifier. Anything containing "@" is an
// email; a 24 digit hex string is an id; everything else resolves to
// ErrUserNotFound.
func ParseTargetRef(raw string) (TargetRef, error) {
	if strings.Contains(raw, "@") {
		return ByEmail(raw), nil
	}
	if IsObjectID(raw) {
		return ByID(raw), nil
	}
	return TargetRef{}, ErrUserNotFound
}

// IsObjectID reports whether s is a 24 digit hexadecimal document id.
func IsObjectID(s string) bool {
	if len(s) != 24 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
