// Package timezone lists the time zones a user may pick for their profile.
package timezone

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"time"
	_ "time/tzdata"
)

const defaultZone = "Africa/Tunis"

type Option struct {
	Value         string `json:"value"`
	Label         string `json:"label"`
	Offset        string `json:"offset"`
	NumericOffset int    `json:"numeric_offset"`
}

var offsetPattern = regexp.MustCompile(`UTC([+-]\d+)(?:/[+-]\d+)?`)

func parseOffset(offset string) int {
	m := offsetPattern.FindStringSubmatch(offset)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

func newOption(value, label, offset string) Option {
	return Option{
		Value:         value,
		Label:         label,
		Offset:        offset,
		NumericOffset: parseOffset(offset),
	}
}

var options = func() []Option {
	opts := []Option{
		newOption("Africa/Tunis", "Tunisia", "UTC+1"),
		newOption("UTC", "UTC", "UTC+0"),
		newOption("Europe/London", "London", "UTC+0/+1"),
		newOption("Europe/Paris", "Paris", "UTC+1/+2"),
		newOption("Europe/Berlin", "Berlin", "UTC+1/+2"),
		newOption("America/New_York", "New York", "UTC-5/-4"),
		newOption("America/Chicago", "Chicago", "UTC-6/-5"),
		newOption("America/Denver", "Denver", "UTC-7/-6"),
		newOption("America/Los_Angeles", "Los Angeles", "UTC-8/-7"),
		newOption("Asia/Dubai", "Dubai", "UTC+4"),
		newOption("Asia/Tokyo", "Tokyo", "UTC+9"),
		newOption("Australia/Sydney", "Sydney", "UTC+10/+11"),
	}
	slices.SortFunc(opts, func(a, b Option) int {
		if c := cmp.Compare(a.NumericOffset, b.NumericOffset); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return opts
}()

// Options returns the supported zones ordered by base offset, then label.
func Options() []Option {
	return slices.Clone(options)
}

func Default() string {
	return defaultZone
}

func find(value string) (Option, bool) {
	i := slices.IndexFunc(options, func(o Option) bool { return o.Value == value })
	if i < 0 {
		return Option{}, false
	}
	return options[i], true
}

func Valid(value string) bool {
	_, ok := find(value)
	return ok
}

// Resolve returns value when it is a supported zone and the default otherwise.
func Resolve(value string) string {
	if Valid(value) {
		return value
	}
	return defaultZone
}

// Format renders a zone as "Label (offset)", or the raw value when unknown.
func Format(value string) string {
	if o, ok := find(value); ok {
		return fmt.Sprintf("%s (%s)", o.Label, o.Offset)
	}
	return value
}

// Location loads a supported zone. Unknown values fall back to the default
// zone.
func Location(value string) *time.Location {
	loc, err := time.LoadLocation(Resolve(value))
	if err != nil {
		return time.UTC
	}
	return loc
}
