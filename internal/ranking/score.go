package ranking

import (
	"math"

	"github.com/desertthunder/ytsrc/internal/models"
)

const bonusShare = 0.6

// Kind weights for [MusicAccuracy], as a percentage of the remaining gap.
const (
	songWeight  = 80
	videoWeight = 70
	otherWeight = 10
)

// DurationScore is 100 for an exact match and drops by the relative distance from target.
// It is negative once the distance exceeds target.
func DurationScore(durationMS, targetMS float64) float64 {
	return 100 - (math.Abs(targetMS-durationMS)/targetMS)*100
}

// MusicAccuracy scores a shelf result of the given kind and duration against targetMS.
func MusicAccuracy(kind models.Kind, durationMS, targetMS float64) float64 {
	delta := DurationScore(durationMS, targetMS)
	return delta + (kindWeight(kind)/100)*(100-delta)
}

func kindWeight(kind models.Kind) float64 {
	switch kind {
	case models.KindSong:
		return songWeight
	case models.KindVideo:
		return videoWeight
	default:
		return otherWeight
	}
}

// VideoSignals are the inputs [VideoAccuracy] reads from one video result.
type VideoSignals struct {
	Seconds float64
	Channel string
	Views   int64
}

// VideoAccuracy scores a video result against targetMS.
//
// The duration score is bumped once when any artist appears in the channel name and again,
// on the bumped value, when the video has maxViews views.
func VideoAccuracy(v VideoSignals, artists []string, maxViews int64, targetMS float64) float64 {
	score := (targetMS - math.Abs(targetMS-v.Seconds*1000)) / targetMS * 100
	if ContainsAny(v.Channel, artists) {
		score = Bump(score)
	}
	if v.Views == maxViews {
		score = Bump(score)
	}
	return score
}

// Bump moves score 60% of the way to 100.
func Bump(score float64) float64 {
	return score + bonusShare*(100-score)
}

// MaxViews returns the highest view count in the batch, or 0 for an empty batch.
func MaxViews(views []int64) int64 {
	var highest int64
	for i, v := range views {
		if i == 0 || v > highest {
			highest = v
		}
	}
	return highest
}
