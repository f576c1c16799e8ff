package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownTimeOfDay  = errors.New("unknown time of day")
	ErrUnknownTopicField = errors.New("unknown topic field")
)

// TimeOfDay buckets a call start hour: [0,12) Morning, [12,17) Afternoon, [17,24) Evening.
type TimeOfDay string

const (
	Morning   TimeOfDay = "Morning"
	Afternoon TimeOfDay = "Afternoon"
	Evening   TimeOfDay = "Evening"
)

// TimesOfDay lists every bucket in display order.
var TimesOfDay = []TimeOfDay{Morning, Afternoon, Evening}

// TimeOfDayOf returns the bucket for t, using its UTC hour.
func TimeOfDayOf(t time.Time) TimeOfDay {
	switch h := t.UTC().Hour(); {
	case h < 12:
		return Morning
	case h < 17:
		return Afternoon
	default:
		return Evening
	}
}

// ParseTimeOfDay accepts a bucket name case-insensitively.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, tod := range TimesOfDay {
		if strings.EqualFold(strings.TrimSpace(s), string(tod)) {
			return tod, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTimeOfDay, s)
}

// TopicField selects which estimated topic column is aggregated.
type TopicField string

const (
	PrimaryTopic   TopicField = "primary"
	SecondaryTopic TopicField = "secondary"
)

// NoTopic labels records whose topic cell is empty.
const NoTopic = ""

// ParseTopicField accepts "primary" or "secondary".
func ParseTopicField(s string) (TopicField, error) {
	switch TopicField(strings.ToLower(strings.TrimSpace(s))) {
	case PrimaryTopic:
		return PrimaryTopic, nil
	case SecondaryTopic:
		return SecondaryTopic, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTopicField, s)
}

// SelectionMode chooses how detail records are picked from a bucket.
type SelectionMode string

const (
	RecentMode SelectionMode = "recent"
	SampleMode SelectionMode = "sample"
)
