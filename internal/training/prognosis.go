package training

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyPrognosis is returned when the server answers 200 without a value.
var ErrEmptyPrognosis = errors.New("training: prognosis missing from response")

// Prognosis is the server's forecast for the athlete.
type Prognosis struct {
	Text string `json:"prognostico"`
}

// DecodePrognosis parses the {"prognostico": "..."} response body.
func DecodePrognosis(body []byte) (Prognosis, error) {
	var p Prognosis
	if err := json.Unmarshal(body, &p); err != nil {
		return Prognosis{}, fmt.Errorf("training: decode prognosis: %w", err)
	}
	p.Text = strings.TrimSpace(p.Text)
	if p.Text == "" {
		return Prognosis{}, ErrEmptyPrognosis
	}
	return p, nil
}

// Message renders the status line for a prognosis. The server already
// prefixes its value with the label, which is not repeated.
func (p Prognosis) Message() string {
	label := strings.TrimSpace(MessagePrognosisPrefix)
	text := strings.TrimSpace(p.Text)
	if strings.HasPrefix(text, label) {
		text = strings.TrimSpace(strings.TrimPrefix(text, label))
	}
	return MessagePrognosisPrefix + text
}
