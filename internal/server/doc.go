// Package server implements the MCP (Model Context Protocol) server for Hough
// line detection.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load image and get metadata
//   - hough_edge_detect: Canny edge map as PNG
//   - hough_detect_lines: Lines, segments and accumulator statistics
//   - hough_accumulator: Accumulator heat map as PNG
//
// Detection arguments left at their zero value take the server's base
// configuration, which comes from pipeline.DefaultConfig and HOUGH_*
// environment overrides.
//
// # Error Handling
//
// Tool errors are returned as JSON-RPC error responses with code -32602 for
// arguments that do not decode and -32000 for everything else, including
// rejected configuration values.
package server
