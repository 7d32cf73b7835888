// Package script runs Lua consumer hooks over replayed wheel emissions.
//
// A script defines any of the global functions on_wheel_start, on_wheel,
// on_wheel_end and on_rescroll. Each receives a table with the fields
// kind, x, y, t (milliseconds) and synthetic. A string return value becomes
// the emission's annotation; nil leaves it empty.
//
// Scripts run in a sandboxed state: only the base, table, string and math
// libraries are available, and the file loading functions of the base
// library are removed.
package script
