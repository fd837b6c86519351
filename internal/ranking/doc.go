// Package ranking scores and orders search candidates.
//
// # Scoring
//
// [MusicAccuracy] scores shelf results by how close their duration is to the target and by
// their kind (songs over videos over everything else). [VideoAccuracy] scores video results by
// duration, then bumps them when the channel looks like the artist and when the video has the
// most views in its batch. Each bump closes 60% of the remaining gap to 100.
//
// Neither score is clamped: a duration further from the target than the target itself gives a
// negative duration score.
//
// # Ordering
//
// [Rank] drops later duplicates of a key before scoring them and sorts the survivors by
// descending score with a stable sort, so equal scores keep their input order. NaN scores,
// produced by unparseable durations, always sort last.
package ranking
