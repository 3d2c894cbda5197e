// Package mcp provides an MCP (Model Context Protocol) server adapter for taskd.
// It lets AI assistants list, read and edit tasks through tools and resources.
package mcp

import "errors"

// ErrMissingTaskService is returned when the task service is not provided.
var ErrMissingTaskService = errors.New("mcp: task service is required")
