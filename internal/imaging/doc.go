// Package imaging holds the session photo: decoding, the stable on-disk copy
// that gets uploaded, and drawing translations over it.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Decoding applies the EXIF
// orientation first, so Width and Height of a Handle are the dimensions of
// the photo as the user sees it.
//
// # Storage
//
// Store keeps exactly one photo, CurrentName, in its directory. Each Save
// re-encodes the frame as JPEG into a temp file and renames it over the
// previous photo, so readers never see a partial file. Clear removes it.
//
// # Annotation
//
// Annotate resizes the photo to the display width and draws each overlay
// placement as an outline with its translated label. Placements that cannot
// be drawn are skipped and reported without aborting the rest.
//
// # Thread Safety
//
// Decode, Open and Annotate are stateless. A Store is not synchronized; the
// session controller is its only writer.
package imaging
