// Package kernel holds the pure general ledger calculators: derivation,
// allocation, accrual, reclassification, chart of accounts checks, period
// control, trial balance aggregation, document numbering and dimension checks.
//
// Nothing here performs I/O or keeps state. Every failure is a
// *domain.ValidationError, and identical input always yields identical output.
//
// Amounts are rounded half up (half away from zero, all operands being
// non-negative). The remainder of a split always lands on the last share.
package kernel
