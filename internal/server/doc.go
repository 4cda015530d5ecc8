// Package server implements the MCP (Model Context Protocol) server for the
// FEZrs calculators.
//
// This package provides a JSON-RPC 2.0 server that exposes the remote-sensing
// tools through the MCP protocol, so an MCP client can run a calculation on
// band files and get back the path of the rendered figure.
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
// One tool per calculator, each taking band paths, export overrides and its
// own parameters:
//   - fezrs_hsv: HSV composite of NIR, Green and Blue
//   - fezrs_saturation: saturation of the NIR, Green, Blue composite
//   - fezrs_irsaturation: saturation of the SWIR2, SWIR1, Red composite
//   - fezrs_gaussian: Gaussian blur of the TIF band
//   - fezrs_kmeans: k-means segmentation of the NIR band
//
// And a helper:
//   - fezrs_band_metadata: size, format and bit depth of band files
//
// # Band Caching
//
// Decoded bands are cached by path for the lifetime of the server, so
// repeated calls on the same scene skip decoding. Each call still gets its
// own tool instance and output.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (unknown tool or
//     malformed params) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(server.WithOutputDir("figures"))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
