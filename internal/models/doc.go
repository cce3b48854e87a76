// Package models defines the core domain models for Divvy.
//
// # Model Groups
//
// Identity and grouping:
//   - User: a registered account, referenced by UUID everywhere else
//   - Ledger: a named group of users sharing transactions and debts
//
// Write path (one set per recorded transaction):
//   - Transaction: immutable record of one money event
//   - SplitItem: one participant's requested share of a transaction
//   - ComputedSplit: a SplitItem plus its final allocated amount
//   - DebtEdge: one directed "X owes Y amount" fact tied to a transaction
//
// Read path (derived, never stored):
//   - Transfer: one payer-to-receiver payment in a settlement plan
//   - SettlementPlan: the ordered transfer list that zeroes a ledger
//
// # Design Principles
//
// 1. **Exact money**: every amount is a shopspring decimal, never a float
// 2. **Avoid circular references**: use ID strings instead of pointers for relationships
// 3. **Immutability on the write path**: transactions and edges are created
//    whole and deleted whole, never mutated in place
package models
