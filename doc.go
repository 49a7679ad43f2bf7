// Package ganan keeps track of the expenses shared by a group of people and
// computes how they should settle up.
//
// The core functionalities include:
//   - Ledger Management: a roster of participants and the list of expenses
//     they paid for each other, edited through explicit commands.
//   - Balances: a stateless computation that credits every payer and debits
//     every beneficiary with an equal share of each expense.
//   - Settlements: payment instructions that bring every balance back to zero,
//     either by greedily matching debtors with creditors or by routing every
//     payment through a single collector.
//   - Data Persistence: encoding of the ledger into a small key-value store
//     (a JSON file or a SQLite database), tolerant to missing or broken keys.
//
// Balances and settlements are never stored: they are recomputed from the
// participants and expenses on every query.
//
// This package serves as the foundational logic for the `ganan` command-line
// tool.
package ganan
