// Package interp implements placeholder interpolation for request
// definitions.
//
// Placeholders take the form {{kind:name}}. Two kinds exist: env resolves
// name against an environment lookup, expr evaluates a built-in expression
// (uuid, now). Scanning is a single left-to-right pass that pairs each {{
// with the nearest following }}; there is no nesting or escaping, so a
// literal }} inside a value ends the placeholder early. That shortest-match
// behavior is deliberate and observable, not a bug to fix.
package interp
