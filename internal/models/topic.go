// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package models

import (
	"time"
)

// TopicDateLayout is the calendar-date format topics are keyed by.
// Spotlight selection compares calendar dates, not timestamps, so two
// topics on the same day in different timezones still key identically
// once normalized to UTC upstream.
const TopicDateLayout = "2006-01-02"

// Topic is a daily discussion prompt that clips may reference. One topic is
// expected per calendar date; curation tolerates zero.
type Topic struct {
	// ID uniquely identifies the topic.
	ID string `json:"id"`

	// Title is the topic's display title.
	Title string `json:"title"`

	// Description is the topic's prompt text.
	Description string `json:"description,omitempty"`

	// Date is the calendar date the topic belongs to.
	Date time.Time `json:"date"`

	// Active reports whether the topic is open for new clips.
	Active bool `json:"active"`

	// CreatorID identifies the submitting user for user-submitted topics.
	// Empty for editorial topics.
	CreatorID string `json:"creator_id,omitempty"`
}

// DateKey returns the topic's calendar-date string used for spotlight
// matching.
func (t *Topic) DateKey() string {
	return t.Date.Format(TopicDateLayout)
}

// TopicMetrics aggregates engagement over all live and processing clips
// referencing a topic. Derived by the store, consumed read-only by curation
// and the hot-mode topic boost.
type TopicMetrics struct {
	// TopicID identifies the topic the metrics belong to.
	TopicID string `json:"topic_id"`

	// Posts is the number of live/processing clips on the topic.
	Posts int64 `json:"posts"`

	// Listens is the total listen count across those clips.
	Listens int64 `json:"listens"`
}

// HasActivity reports whether the topic has any posts or listens.
func (m TopicMetrics) HasActivity() bool {
	return m.Posts > 0 || m.Listens > 0
}

// CuratedTopics is the output of topic curation: the day's spotlight (nil
// when no topic matches today's date) and up to six secondary topics, never
// including the spotlight.
type CuratedTopics struct {
	Spotlight *Topic  `json:"spotlight"`
	Secondary []Topic `json:"secondary"`
}
