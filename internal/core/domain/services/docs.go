// Package services provides domain services that orchestrate business operations
// that don't naturally belong to the Order aggregate itself.
//
// The package includes:
//   - StatusEngine: validates and applies status transitions per product group,
//     holding dispatch-phase transitions until driver details are confirmed
package services
