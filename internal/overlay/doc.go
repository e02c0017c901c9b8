// Package overlay maps recognized text regions from source-image pixel space
// into the coordinate space the photo is actually displayed at.
//
// Everything in this package is pure: no I/O, no package-level state, and the
// same inputs always produce bit-identical outputs. The session layer decides
// which scale to use; the presentation layer decides how to draw the result.
//
// # Coordinate System
//
// Source coordinates follow the same convention as decoded images:
//   - (0,0) is the top-left pixel
//   - X increases rightward, Y increases downward
//   - Values are float64 because recognizers report sub-pixel positions
//
// A Polygon is always four points in the winding order top-left, top-right,
// bottom-right, bottom-left.
//
// # Scale
//
// A single uniform factor is used for both axes:
//
//	scale = renderWidth / imageWidth
//
// The photo is assumed to be displayed at the aspect ratio imageWidth/imageHeight,
// so RenderHeight derives the display height from the render width.
//
// # Axis-Aligned Approximation
//
// Project reduces the quadrilateral to an axis-aligned rectangle using only the
// top-left, top-right and bottom-left corners:
//
//	left   = TL.X * scale
//	top    = TL.Y * scale
//	width  = (TR.X - TL.X) * scale
//	height = (BL.Y - TL.Y) * scale
//
// This is exact for typeset menu text photographed head-on. Rotated or
// perspective-distorted regions are approximated, not rendered as rotated shapes;
// use Polygon.AxisAligned to detect regions where the approximation is poor.
//
// # Degenerate Input
//
// A zero image width, a non-finite scale or a polygon with its corners in the
// wrong order yields a zero-size rectangle instead of an error, so one bad region
// never prevents the others from being drawn.
package overlay
