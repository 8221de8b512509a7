// Package pricing computes the credits required for a campaign submission.
//
// Two policies exist: the current flat policy charges one credit per
// submitted recipient regardless of validity or message length, and the
// historical segmented policy charges per valid recipient multiplied by the
// 160-character segment count. The active policy is selected by
// configuration.
package pricing

import (
	"fmt"
	"unicode/utf8"
)

const segmentLength = 160

// Strategy maps a submission to the credits it costs.
type Strategy interface {
	RequiredCredits(submittedCount, validCount int, text string) int64
	Name() string
}

type flatStrategy struct{}

func (flatStrategy) RequiredCredits(submittedCount, _ int, _ string) int64 {
	return int64(submittedCount)
}

func (flatStrategy) Name() string { return "flat" }

type segmentedStrategy struct {
	baseRate int64
}

func (s segmentedStrategy) RequiredCredits(_, validCount int, text string) int64 {
	segments := (utf8.RuneCountInString(text) + segmentLength - 1) / segmentLength
	if segments < 1 {
		segments = 1
	}
	return int64(validCount) * s.baseRate * int64(segments)
}

func (segmentedStrategy) Name() string { return "segmented" }

// NewStrategy returns the strategy for the configured policy name.
func NewStrategy(name string, baseRate int64) (Strategy, error) {
	switch name {
	case "", "flat":
		return flatStrategy{}, nil
	case "segmented":
		if baseRate < 1 {
			baseRate = 1
		}
		return segmentedStrategy{baseRate: baseRate}, nil
	default:
		return nil, fmt.Errorf("unknown pricing strategy: %q", name)
	}
}
