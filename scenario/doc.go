// Package scenario provides guided checklists for common disputes.
//
// A Guide is split into phases, each holding prioritized steps. A Checklist
// tracks which steps the user has finished and which phase they are looking
// at; a Tracker loads and saves checklists through a storage.ProgressRepository.
package scenario
