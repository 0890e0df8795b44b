// Package server implements the MCP (Model Context Protocol) server for image editing tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the imaging package's
// resize, rotate and save operations through the MCP protocol.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Editing Operations:
//   - image_resize: Resize keeping aspect ratio, then save
//   - image_rotate: Rotate by any angle, then save
//   - image_transform: Apply resize/rotate steps in order, then save
//   - image_convert: Re-encode to another format
//
// Every editing tool writes exactly one file and returns the metadata of the
// written file. The output format comes from the output path's extension, or
// from the source when the output is a directory.
//
// # Image Caching
//
// Decoded images are cached by path. Tools always work on a private clone, and
// cache entries for overwritten paths are evicted after each save.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code -32000: fatal error (bad arguments, undecodable image, missing path)
//   - code -32001: recoverable imaging failure (unsupported mode or extension,
//     unwritable directory, encoder error)
//   - data: the Go error string
//
// # Usage
//
//	srv, err := server.NewWithConfig(cfg)
//	if err != nil {
//	    log.Fatal().Err(err).Send()
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal().Err(err).Send()
//	}
package server
