package types

import "fmt"

// ActivityType represents the kind of an activity record
type ActivityType string

const (
	ActivityTypeCallLog         ActivityType = "Call Log"
	ActivityTypeEmail           ActivityType = "Email"
	ActivityTypeMeetingNote     ActivityType = "Meeting Note"
	ActivityTypeInternalComment ActivityType = "Internal Comment"
	ActivityTypeStatusChange    ActivityType = "Status Change"
)

// AllActivityTypes returns all valid activity types
func AllActivityTypes() []ActivityType {
	return []ActivityType{
		ActivityTypeCallLog,
		ActivityTypeEmail,
		ActivityTypeMeetingNote,
		ActivityTypeInternalComment,
		ActivityTypeStatusChange,
	}
}

// IsValid checks if the activity type is valid
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityTypeCallLog,
		ActivityTypeEmail,
		ActivityTypeMeetingNote,
		ActivityTypeInternalComment,
		ActivityTypeStatusChange:
		return true
	default:
		return false
	}
}

// String returns the string representation of the activity type
func (t ActivityType) String() string {
	return string(t)
}

// ParseActivityType parses a string into an ActivityType
func ParseActivityType(s string) (ActivityType, error) {
	at := ActivityType(s)
	if !at.IsValid() {
		return "", fmt.Errorf("invalid activity type: %s", s)
	}
	return at, nil
}

// Sentiment is the tone tag attached to an activity
type Sentiment string

const (
	SentimentNone     Sentiment = ""
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// IsValid checks if the sentiment is valid
func (s Sentiment) IsValid() bool {
	switch s {
	case SentimentNone, SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sentiment
func (s Sentiment) String() string {
	return string(s)
}
