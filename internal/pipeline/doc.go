// Package pipeline orchestrates the blood-smear detection stages.
//
// One Run turns a raw color image into two detection sets, parasitized
// cells and normal red blood cells, through a fixed sequence: grayscale
// derivation, edge binarization, HSV infection classification, a Hough
// detection pass per class with greedy overlap resolution, and cross-class
// exclusion of normal detections that coincide with infected ones.
//
// Data flows one way through the stages and every stage returns newly
// allocated artifacts, so concurrent runs over different images need no
// coordination. There is no cross-run state.
//
// Configuration is a flat yaml-loadable struct validated up front; a stage
// never substitutes a default for an invalid value. Failures carry the stage
// name. Zero detections is a reportable outcome, not an error.
package pipeline
