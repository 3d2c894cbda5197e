// Package domain defines the core business entities for taskd.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Task: A persisted to-do item
//   - NewTask: Input for creating a task
//   - TaskPatch: A sparse update where only present fields apply
//   - TaskFilter: Optional restrictions for listing tasks
//   - AppSettings: Storage, server and logging configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
