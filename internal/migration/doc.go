// Package migration drives the per-project migration pipeline: fetch source configuration,
// map it into a destination create payload, and create the destination project with isolated
// failure handling per project.
package migration
