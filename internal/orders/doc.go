// Package orders holds the work-order list screen state: the filter pipeline,
// the list view-model and the editor launch state machine.
//
// Allowed here:
// - filter state and predicates over repository.WorkOrder snapshots
// - reload sequencing and the modal editor lifecycle
//
// Not allowed here:
// - rendering, key handling or any bubbletea types
// - writes to the record store
package orders
