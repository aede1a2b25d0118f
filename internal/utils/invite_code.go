package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

const (
	inviteCodeGroups    = 3
	inviteCodeGroupSize = 4
)

var inviteCodePattern = regexp.MustCompile(`^[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}$`)

// GenerateInviteCode returns a random workspace invite code made of three
// dash-separated groups of four lowercase hex digits.
func GenerateInviteCode() (string, error) {
	buf := make([]byte, inviteCodeGroups*inviteCodeGroupSize/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	digits := hex.EncodeToString(buf)
	groups := make([]string, inviteCodeGroups)
	for i := range groups {
		groups[i] = digits[i*inviteCodeGroupSize : (i+1)*inviteCodeGroupSize]
	}
	return strings.Join(groups, "-"), nil
}

// NormalizeInviteCode trims and lower-cases a code typed by a user. The
// second result is false when the code cannot have been generated by
// GenerateInviteCode.
func NormalizeInviteCode(raw string) (string, bool) {
	code := strings.ToLower(strings.TrimSpace(raw))
	return code, inviteCodePattern.MatchString(code)
}
