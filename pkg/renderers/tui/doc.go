// Package tui renders forms as terminal prompts. Every answer goes through the
// bound field, so the same rules, messages and strength breakdown apply as in
// the HTML renderer.
package tui
