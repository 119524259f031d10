// Package transfer moves object-store contents into a VikingDB
// collection. It lists objects under a bucket prefix, converts each key
// into a record whose image field is a tos:// URI pointing at the
// object, and upserts the records in bounded-concurrency batches. The
// service fetches and vectorizes the referenced objects itself; the
// object bytes never pass through this process.
//
// Each run gets a unique run ID and produces a Report with per-run
// counts, so repeated runs over the same prefix are easy to compare.
// Record IDs are derived from the object key, which makes the transfer
// idempotent: re-running over the same bucket overwrites rather than
// duplicates.
package transfer
