// Package reconcile builds identifier sets from tables and compares them.
//
// Collect walks a table once, searching the selected column (or every
// column) for identifiers, de-duplicating them into a Set and remembering
// the first cell each one came from. Rows that yield nothing are counted
// and handed to a reject callback with a reason.
//
// Compare applies one of the supported operations (only_first, only_second,
// common, union) and always returns entries sorted ascending.
package reconcile
