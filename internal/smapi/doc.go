// Package smapi submits directory entries to z/VM through the SMAPI
// command line client (smcli).
//
// The flow for a new guest is:
//
//	entry, _ := directory.Builder{...}.Build(userID, p)
//	sub := smapi.NewSubmitter(smapi.NewCLI(path, sudo), stagingDir)
//	err := sub.Submit(ctx, entry)
//
// Submit writes the entry to a staging file, calls Image_Create_DM with
// that file, and removes the file again on every path. The call is made
// exactly once; there is no retry. A non-zero SMAPI result is returned as
// *SubmissionError carrying the Result unchanged.
//
// Consumer-Side Interfaces:
//
// Submitter depends on the Invoker interface only; *CLI satisfies it in
// production and tests supply their own implementation.
package smapi
