// Package store defines the persistence boundary of the moments core.
//
// Backends implement RecordStore, a small keyed blob store. The Gateway sits
// on top of it and owns the encoding of the moment collection and the owner's
// settings, including the rule that unreadable data resets to an empty
// default instead of failing.
package store
