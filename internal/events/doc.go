// Package events carries change notifications from the moment repository and
// the settings service to interested components.
//
// The primary components are:
// - Event: describes one committed change
// - EventHandler: interface for components that react to events
// - EventEmitter: interface for components that publish events
package events
