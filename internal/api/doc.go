// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts HTTP to the moment workflow and the
// supporting services; handlers never mutate the collection except through
// service.Workflow.
package api
