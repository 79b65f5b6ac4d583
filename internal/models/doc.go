// Package models defines the core domain models for Splitter.
//
// # Models
//
//   - Bill / BillItem: a receipt and its line items, as persisted by the gateway
//   - User: a person on a bill's roster
//   - ItemSplit / ShareAssignment: per-item, per-user share weights and derived costs
//   - RemoteShareRecord: a share row as stored by the gateway, keyed loosely
//   - SubmittedSplit: the payload sent to the gateway on finalize
//   - CalculationSummary: the finalized per-user breakdown plus bill totals
//
// # Conventions
//
//  1. Identifiers are int64; zero means "absent".
//  2. Costs are always derived from shares and prices, never authoritative input.
//  3. Derived totals (grand total, display total) are methods, never stored fields.
//  4. Relationships use IDs instead of pointers.
package models
