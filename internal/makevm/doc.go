// Package makevm implements the MakeVM function: it turns a MakeVM command
// line into a z/VM user directory entry and submits it.
//
// A request has the form
//
//	MakeVM <userid> <subfunction> [operands...]
//
// where subfunction is DIRECTORY (create the guest), HELP or VERSION.
// "MakeVM help" and "MakeVM version" may omit the userid.
//
// Every request ends in a Results record. OverallRC is 0 on success and
// otherwise names the failure category: 1 SMAPI rejected the request,
// 2 the SMAPI client could not be run, 4 the request was invalid (RC 4 and
// a reason code in RS), 99 an internal error such as a staging failure.
package makevm
