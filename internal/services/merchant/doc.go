// Package merchant coordinates the approval workflow for merchant and bank
// owners.
//
// The Service owns every write that moves an account, business profile or
// contact profile through its approval states:
//
//   - Owners submit business and contact details. Each owner has at most
//     one PENDING business and one PENDING contact; resubmitting while a
//     row is pending edits that row in place.
//   - Admins approve or reject pending profiles and approve, reject, block
//     or unblock owner accounts. Transitions come from package approval.
//   - Approving a business replaces the owner's approved snapshot in the
//     same transaction as the status change. Rejections and blocks append
//     to their decision logs in that transaction too.
//
// Work that follows a committed decision is best-effort. The new snapshot
// overwrites the cached one, the search index is refreshed, an
// ApprovalDecided event is published and the owner is notified from a
// background goroutine. None of these can fail the decision. Reads fill the
// cache only when it holds nothing for the owner, so a read that raced a
// decision cannot put the older snapshot back.
//
// Submits and decisions on the same owner are serialized in-process by a
// keyed lock and in the database by a row lock on the owner account.
package merchant
