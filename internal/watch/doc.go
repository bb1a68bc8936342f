// Package watch contains the bot's core control loop: the startup
// precheck, the response validator, the status-to-verdict translator,
// the error report deduplicator and the orchestrating service that ties
// them together on a fixed cadence.
package watch
