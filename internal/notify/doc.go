// Package notify decides which active moments deserve a reminder today and
// delivers each one at most once per moment and calendar day through a
// Capability.
package notify
