// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// TaskService owns task validation: titles are trimmed and must not be
// blank, patches must name at least one field, and both rules are checked
// before the store is touched. Existence is checked before writes so a
// missing task never causes one.
//
// Services are pure Go with no CGO or external dependencies.
package services
