// Package domain contains the core entities of the moments tracker: moments,
// their tasks, emotion check-ins and reflections, plus user settings and the
// plan drafts seeded by the assistant. It is independent of any storage or
// delivery mechanism.
package domain
