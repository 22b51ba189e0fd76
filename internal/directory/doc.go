// Package directory builds z/VM user directory entries.
//
// A directory entry is an ordered list of statements; the USER statement
// comes first, followed by INCLUDE, machine and COMMAND statements, and
// finally device and comment statements. Builder produces an Entry from a
// parsed MakeVM parameter map by running a fixed, ordered table of rules.
// Each rule looks at the parameters and contributes zero or more statements.
//
// Sizing rules:
//
//   - Memory sizes are an integer followed by M or G. They are normalized to
//     megabytes whenever arithmetic is needed.
//   - The reserved-memory statement carries max - primary memory, clamped to
//     a configured ceiling and switched to a G suffix when the megabyte value
//     no longer fits in seven digits.
//   - V-DISK sizes are converted to 512-byte blocks. Requests above 2 GiB are
//     rejected; requests between the device limit and 2 GiB are clamped to
//     MaxVDiskBlocks.
//
// Builder never returns a partial entry. The first failing rule stops
// construction and its error is returned.
package directory
