// Package kourasync reconciles investment-account activity between the
// Koura Wealth investor portal and a Ghostfolio instance, so that fund
// holdings reported by the brokerage appear as ledger activities without
// duplication.
//
// The core functionalities include:
//   - Snapshot Reconstruction: turning the brokerage's current fund holdings
//     into synthetic "current position" BUY activities, one per fund, priced
//     at a fixed 1.00 per unit so the imported value tracks the reported
//     dollar value.
//   - Normalization: mapping ledger-shaped and brokerage-shaped activities
//     into one canonical seven-field comparable form.
//   - Identity Extraction: recovering the upstream transaction identifier
//     embedded in an activity's free-text comment.
//   - Diffing: deciding which reconstructed activities are genuinely new,
//     using the identifier when present and falling back to field equality
//     for records synced before identifier tagging.
//
// This package serves as the foundational logic for the `kgs` command-line
// tool; the koura and ghostfolio subpackages carry the two HTTP clients.
package kourasync
