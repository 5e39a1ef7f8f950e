package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

const botIDPrefix = "bot-"

// Identity is one display persona a hosted bot plays under.
type Identity struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	AvatarIndex int    `json:"avatar_index"`
}

var defaultIdentities = []Identity{
	{UserID: "bot-weaver", Username: "Weaver", AvatarIndex: 1},
	{UserID: "bot-mason", Username: "Mason", AvatarIndex: 2},
	{UserID: "bot-shepherd", Username: "Shepherd", AvatarIndex: 3},
	{UserID: "bot-miller", Username: "Miller", AvatarIndex: 4},
}

var (
	identityMu   sync.RWMutex
	identityPool = defaultIdentities
)

// IsBot reports whether a user id belongs to a hosted bot seat.
func IsBot(userID string) bool {
	return strings.HasPrefix(userID, botIDPrefix)
}

// LoadIdentities replaces the identity pool from a JSON file. The built-in
// pool stays active when the file is missing or invalid.
func LoadIdentities(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read bot identities: %w", err)
	}
	var pool []Identity
	if err := json.Unmarshal(data, &pool); err != nil {
		return fmt.Errorf("failed to unmarshal bot identities: %w", err)
	}
	if len(pool) == 0 {
		return fmt.Errorf("bot identities file is empty")
	}
	for i := range pool {
		if !IsBot(pool[i].UserID) {
			return fmt.Errorf("bot identity %q lacks the %q prefix", pool[i].UserID, botIDPrefix)
		}
	}
	identityMu.Lock()
	identityPool = pool
	identityMu.Unlock()
	return nil
}

// IdentityFor returns a stable identity for a seat index, wrapping around
// the pool.
func IdentityFor(seat int) Identity {
	identityMu.RLock()
	defer identityMu.RUnlock()
	if seat < 0 {
		seat = 0
	}
	return identityPool[seat%len(identityPool)]
}

// Username resolves the display name for a bot user id, or "" for
// unknown ids.
func Username(userID string) string {
	identityMu.RLock()
	defer identityMu.RUnlock()
	for _, id := range identityPool {
		if id.UserID == userID {
			return id.Username
		}
	}
	return ""
}
