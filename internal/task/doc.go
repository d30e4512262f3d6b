// Package task runs background jobs on a fixed interval until stopped. The
// server uses it for the reminder sweep so that day rollover is noticed
// without any mutation.
package task
