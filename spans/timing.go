/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package spans

import "strconv"

// computeEndTime derives an epoch-second end time from the start time and
// the raw duration (nanoseconds). Any parse failure yields "", never a
// panic.
func computeEndTime(startTime string, rawDuration any) string {
	if startTime == "" {
		return ""
	}
	durationNS, ok := numeric(rawDuration)
	if !ok || durationNS == 0 {
		return ""
	}
	start, err := strconv.ParseFloat(startTime, 64)
	if err != nil {
		return ""
	}
	return strconv.FormatFloat(start+durationNS/1e9, 'f', -1, 64)
}

// computeDurationMS derives the span duration in milliseconds, preferring
// the raw duration field and falling back to end−start. Missing or invalid
// timing yields nil.
func computeDurationMS(startTime, endTime string, rawDuration any) *float64 {
	if durationNS, ok := numeric(rawDuration); ok && durationNS != 0 {
		ms := durationNS / 1e6
		return &ms
	}
	if startTime != "" && endTime != "" {
		start, errStart := strconv.ParseFloat(startTime, 64)
		end, errEnd := strconv.ParseFloat(endTime, 64)
		if errStart == nil && errEnd == nil {
			ms := (end - start) * 1000
			return &ms
		}
	}
	return nil
}
