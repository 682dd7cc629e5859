// Package imaging loads source images and prepares them for line detection.
//
// It owns the decoded-image cache shared by the MCP server and the CLI,
// region-of-interest cropping, and PNG encoding for results that carry
// images back to a client.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward. For regions, (x1,y1)
// is inclusive and (x2,y2) is exclusive.
//
// # Formats
//
// PNG, JPEG and GIF decoders come from the standard library; BMP and TIFF
// are registered from golang.org/x/image.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Images it returns are shared
// between callers and must not be modified.
package imaging
