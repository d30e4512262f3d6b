// Package service contains the application use cases for moments. It
// orchestrates domain objects and the persistence gateway (internal/store)
// and is the only layer the delivery surfaces (HTTP API, CLI) talk to.
//
// Key components:
//
// 1. MomentRepository:
//   - Owns the in-memory moment collection and the current selection
//   - Serializes every mutation, persists the full collection, and rolls the
//     change back when the save fails
//   - Emits a domain event after each committed mutation
//
// 2. Workflow:
//   - Accepts command messages (CreateMoment, CompleteMoment, ...) through
//     Dispatch and applies them to the repository
//   - Wraps refusals in *WorkflowError so callers can use errors.Is
//
// 3. Supporting services:
//   - SettingsService persists the owner's preferences
//   - ReminderService re-evaluates the notification scheduler on events and on
//     the periodic sweep
//   - Planner fronts the planning assistant and collapses its failures into
//     ErrAssistantFailed
//   - Dashboard computes the analytics summary from a snapshot
//
// Services receive their dependencies through constructors and depend on the
// store ports, never on a concrete backend.
package service
