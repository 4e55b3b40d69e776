// Package detection locates occurrences of a small template image inside a
// screenshot and classifies each occurrence as available or dark.
//
// This is the core of the icon detector: everything else in the repository
// is plumbing that feeds bitmaps in and carries results out.
//
// # Pipeline
//
// Detect runs a fixed sequence of steps:
//
//  1. Template matching: normalized cross-correlation scores every
//     template-sized window of the screenshot; windows at or above the
//     confidence threshold become candidates.
//  2. De-duplication: greedy overlap removal (see the geometry package)
//     collapses jittered near-threshold matches of the same icon, keeping
//     the highest-confidence box of each cluster.
//  3. Brightness classification: each surviving rectangle is scored by mean
//     BT.601 luminance and labeled available or dark.
//  4. Filtering: with dark filtering enabled, only available rectangles are
//     reported as locations; samples for dark ones remain in the result for
//     diagnostics.
//  5. Debug rendering (optional): an annotated copy of the screenshot is
//     written to disk. A render failure never fails the detection.
//
// # Determinism
//
// Given identical images and configuration, results are bit-identical.
// Locations are ordered row-major (ascending origin Y, then X); candidate
// scan order breaks any remaining ties. The per-window scoring is
// parallelized across rows internally, but candidates are reassembled in
// scan order so parallelism never changes observable output.
//
// # Reentrancy
//
// Detect holds no mutable package state; concurrent calls against different
// (or the same, immutable) screenshots do not interfere.
package detection
