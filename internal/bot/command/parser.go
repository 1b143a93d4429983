// Package command parses prefix-style moderator commands from message
// content.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// ErrInvalidArgument is returned for malformed command arguments. Handlers
// reply with usage text instead of escalating it.
var ErrInvalidArgument = errors.New("invalid command argument")

// Invocation is one parsed prefix command.
type Invocation struct {
	// Name of the command, lowercased.
	Name string
	// Args are the whitespace-separated arguments after the name.
	Args []string
}

// Parse splits message content into a command invocation. Returns false when
// the content does not start with the prefix or names no command.
func Parse(prefix, content string) (*Invocation, bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return nil, false
	}

	fields := strings.Fields(content[len(prefix):])
	if len(fields) == 0 {
		return nil, false
	}

	return &Invocation{
		Name: strings.ToLower(fields[0]),
		Args: fields[1:],
	}, true
}

// Mentions consumes the leading run of user references from args, accepting
// mention syntax (<@123>, <@!123>) and raw IDs. Returns the parsed IDs and
// the remaining args. Mirrors the greedy member arguments of the command
// surface: at least one target, then everything else.
func Mentions(args []string) ([]snowflake.ID, []string) {
	var ids []snowflake.ID

	for len(args) > 0 {
		id, ok := parseUserRef(args[0])
		if !ok {
			break
		}

		ids = append(ids, id)
		args = args[1:]
	}

	return ids, args
}

// parseUserRef parses a single user reference token.
func parseUserRef(token string) (snowflake.ID, bool) {
	raw := token

	if strings.HasPrefix(raw, "<@") && strings.HasSuffix(raw, ">") {
		raw = strings.TrimSuffix(strings.TrimPrefix(raw, "<@"), ">")
		raw = strings.TrimPrefix(raw, "!")
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}

	return snowflake.ID(id), true
}

// Rest joins the remaining args back into free text, used for reasons.
// Returns an empty string when nothing remains.
func Rest(args []string) string {
	return strings.Join(args, " ")
}

// durationUnits maps duration suffixes to their length. Days and weeks are
// not supported by time.ParseDuration, so parsing is done here.
var durationUnits = map[byte]time.Duration{
	's': time.Second,
	'm': time.Minute,
	'h': time.Hour,
	'd': 24 * time.Hour,
	'w': 7 * 24 * time.Hour,
}

// ParseDuration parses a compact positive duration like "30m", "2h", or "7d".
func ParseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("%w: duration %q", ErrInvalidArgument, s)
	}

	unit, ok := durationUnits[s[len(s)-1]]
	if !ok {
		return 0, fmt.Errorf("%w: unknown duration unit in %q", ErrInvalidArgument, s)
	}

	value, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: duration %q", ErrInvalidArgument, s)
	}

	return time.Duration(value) * unit, nil
}

// ParseCount parses a positive integer argument.
func ParseCount(s string) (int, error) {
	value, err := strconv.Atoi(s)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: count %q", ErrInvalidArgument, s)
	}

	return value, nil
}
