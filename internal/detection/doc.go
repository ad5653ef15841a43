// Package detection implements circle detection and classification for
// blood-smear microscopy images.
//
// The package provides the four algorithmic stages of the pipeline:
//
//   - DetectCircles: a circular Hough transform over a discrete radius sweep,
//     extracting the strongest accumulator peaks
//   - ClassifyInfection: HSV band-pass classification of parasitized tissue
//     inside an existing cell mask
//   - ResolveOverlaps: greedy score-ordered selection of a non-overlapping
//     detection subset
//   - ExcludeOverlapping: removal of detections that geometrically coincide
//     with detections of another class
//
// # Scores
//
// A Circle's Score is its Hough accumulator value normalized by the number of
// perimeter samples for its radius, so peaks from different radii rank
// against each other. Scores are relative confidence measures, not calibrated
// probabilities.
//
// # Determinism
//
// Every function here is deterministic: identical inputs and parameters
// produce bit-identical outputs. Per-radius Hough accumulation runs
// concurrently but results are merged in radius order, and all sorts are
// stable with fixed tie-breaking.
//
// # Empty Results
//
// Zero detections is a valid, reportable outcome. Only invalid parameters
// (an empty radius sweep, a non-positive step) produce errors.
package detection
