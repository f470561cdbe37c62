package thesportsdb

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// eventsEnvelope is the eventsround.php payload. Events is null for a round
// without games.
type eventsEnvelope struct {
	Events []event `json:"events"`
}

type event struct {
	ID        string     `json:"idEvent"`
	EventName string     `json:"strEvent"`
	HomeTeam  string     `json:"strHomeTeam"`
	AwayTeam  string     `json:"strAwayTeam"`
	HomeScore scoreValue `json:"intHomeScore"`
	AwayScore scoreValue `json:"intAwayScore"`
	Timestamp string     `json:"strTimestamp"`
	DateEvent string     `json:"dateEvent"`
	Time      string     `json:"strTime"`
}

// scoreValue accepts the provider's score encodings: null, "", "24" and 24.
type scoreValue struct {
	value *int
}

func (s *scoreValue) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		s.value = nil
		return nil
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := sonic.Unmarshal(raw, &text); err != nil {
			return fmt.Errorf("decode score: %w", err)
		}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		s.value = nil
		return nil
	}

	v, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("decode score %q: %w", text, err)
	}
	if v < 0 {
		return fmt.Errorf("decode score %q: negative", text)
	}
	s.value = &v
	return nil
}

func (s scoreValue) Int() *int {
	if s.value == nil {
		return nil
	}
	v := *s.value
	return &v
}
