// Package config loads showevs session files.
//
// A session file describes how to log, how the fake device manager starts,
// which listeners to register and a script of simulated device activity.
// Files are TOML or YAML, selected by extension:
//
//	[log]
//	level = "debug"
//
//	[manager]
//	exceptions = ["stmi::Touch:TouchEvent"]
//
//	[[listeners]]
//	name = "keys"
//	event_classes = ["stmi::Keys:KeyEvent"]
//	lua = 'ev.key ~= "Escape"'
//
//	[[script]]
//	action = "add_device"
//	device = "kbd"
//	capabilities = ["stmi::Keys"]
//
//	[[script]]
//	action = "key"
//	device = "kbd"
//	key = "Q"
//	type = "press"
//
// Load returns a validated Session. Validation errors wrap the sentinel
// errors of this package and can be matched with errors.Is.
package config
