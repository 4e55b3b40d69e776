// Package ocr extracts the text labels rendered next to detected buttons.
//
// Game and tool UIs usually draw a skill or action name immediately to the
// left of its activation button. Given the button rectangles produced by the
// detection pipeline, this package crops the adjacent text band, upscales it
// for the thin UI fonts, and runs Tesseract (via gosseract/v2) over it.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// The default language is English ("eng"); any installed Tesseract language
// code works.
//
// # Error Handling
//
// Recognition runs per button. A failure on one region (unreadable pixels,
// Tesseract hiccup) yields an empty label for that button rather than failing
// the batch, so one garbled label never hides the others.
//
// # Temporary Files
//
// Tesseract wants a file path, so each cropped band is written to a temporary
// PNG that is removed after recognition.
package ocr
