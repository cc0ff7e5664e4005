package training

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// TimestampLayout matches the ISO-8601 form browsers emit from toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// affirmative is the only answer that counts as "yes".
const affirmative = "sim"

// Kind distinguishes the two training venues.
type Kind int

const (
	Sea Kind = iota
	Gym
)

// Action maps the venue to the action that records it.
func (k Kind) Action() Action {
	if k == Gym {
		return ActionGym
	}
	return ActionSea
}

// OccurredPrompt is the yes/no question asked first.
func (k Kind) OccurredPrompt() string {
	if k == Gym {
		return PromptGymOccurred
	}
	return PromptSeaOccurred
}

// DescribePrompt is the follow-up question asked when the answer was not "sim".
func (k Kind) DescribePrompt() string {
	if k == Gym {
		return PromptGymDescribe
	}
	return PromptSeaDescribe
}

func (k Kind) String() string {
	if k == Gym {
		return "academia"
	}
	return "mar"
}

// ParseKind accepts the Portuguese venue names used on the command line.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "mar", "sea":
		return Sea, nil
	case "academia", "gym":
		return Gym, nil
	}
	return Sea, fmt.Errorf("training: unknown kind %q", value)
}

// Event is one training session about to be reported. Data holds either a
// timestamp (Occurred) or the user's free-text description.
type Event struct {
	Kind     Kind
	Occurred bool
	Data     string
}

type eventForm struct {
	Data string `schema:"data"`
}

// IsAffirmative reports whether an answer means "yes".
func IsAffirmative(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), affirmative)
}

// OccurredToday builds an event stamped with now.
func OccurredToday(kind Kind, now time.Time) Event {
	return Event{
		Kind:     kind,
		Occurred: true,
		Data:     FormatTimestamp(now),
	}
}

// Described builds an event from a free-text description. An empty
// description is rejected before anything is sent.
func Described(kind Kind, description string) (Event, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Event{}, &ValidationError{Field: "data", Message: MessageMissingDescribe}
	}
	return Event{Kind: kind, Data: description}, nil
}

// FormatTimestamp renders t in UTC with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// FormValues returns the form body for the event.
func (e Event) FormValues() (url.Values, error) {
	return encodeForm(eventForm{Data: e.Data})
}
