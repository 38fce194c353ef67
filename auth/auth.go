// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidAdminKey   = errors.New("invalid admin key")
	ErrNotCreator        = errors.New("requester is not the election creator")
	ErrInvalidElectionID = errors.New("election ID must be 1-64 letters, digits, '-' or '_'")
)

// NewElectionID returns a random UUID for a new election
func NewElectionID() string {
	return uuid.NewString()
}

// ValidateElectionID checks a caller supplied election ID.
// IDs end up in URL paths, so only URL-safe characters are allowed.
func ValidateElectionID(id string) error {
	if len(id) == 0 || len(id) > 64 {
		return ErrInvalidElectionID
	}
	for _, c := range id {
		ok := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' || c == '_'
		if !ok {
			return ErrInvalidElectionID
		}
	}
	return nil
}

// GenerateAdminKey creates an HMAC-based admin key for an election
// This is deterministic and verifiable
func GenerateAdminKey(electionID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(electionID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the election
func ValidateAdminKey(electionID, adminKey, salt string) error {
	expected := GenerateAdminKey(electionID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// HashIP creates a one-way hash of an IP address.
// It is the network identity of voters and creators; raw IPs are never stored.
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}

// AuthorizeCreator checks that the requester identity matches the creator's
func AuthorizeCreator(creatorHash, requesterHash string) error {
	if creatorHash == "" || !hmac.Equal([]byte(creatorHash), []byte(requesterHash)) {
		return ErrNotCreator
	}
	return nil
}
