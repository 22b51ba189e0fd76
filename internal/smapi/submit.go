package smapi

import (
	"context"
	"fmt"
	"os"

	"github.com/jbweber/zdir/internal/ctxlog"
	"github.com/jbweber/zdir/internal/directory"
	"github.com/jbweber/zdir/internal/naming"
)

// CreateDirectoryAPI is the SMAPI function that adds a user directory entry.
const CreateDirectoryAPI = "Image_Create_DM"

// Invoker runs one SMAPI function.
//
// In production, this is satisfied by *CLI.
// In tests, this is satisfied by mock implementations.
type Invoker interface {
	Invoke(ctx context.Context, api string, args []string) (Result, error)
}

// Submitter stages directory entries and submits them with Image_Create_DM.
type Submitter struct {
	invoker    Invoker
	stagingDir string
}

// NewSubmitter returns a Submitter that stages files in stagingDir
// (os.TempDir when empty).
func NewSubmitter(invoker Invoker, stagingDir string) *Submitter {
	return &Submitter{invoker: invoker, stagingDir: stagingDir}
}

// Submit creates the directory entry for entry.UserID.
//
// The staging file is removed before Submit returns, whatever the outcome.
func (s *Submitter) Submit(ctx context.Context, entry *directory.Entry) error {
	log := ctxlog.FromContext(ctx)

	f, err := os.CreateTemp(s.stagingDir, naming.StagingFilePattern(entry.UserID))
	if err != nil {
		return &StagingError{Err: err}
	}
	path := f.Name()
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warn("failed to remove staging file", "path", path, "error", rmErr)
		}
	}()

	if _, err := f.Write(entry.Bytes()); err != nil {
		_ = f.Close()
		return &StagingError{Err: fmt.Errorf("write %s: %w", path, err)}
	}
	if err := f.Close(); err != nil {
		return &StagingError{Err: fmt.Errorf("close %s: %w", path, err)}
	}

	log.Debug("invoking SMAPI", "api", CreateDirectoryAPI, "userid", entry.UserID, "file", path, "statements", len(entry.Lines))
	res, err := s.invoker.Invoke(ctx, CreateDirectoryAPI, []string{"-T", entry.UserID, "-f", path})
	if err != nil {
		return err
	}
	if !res.OK() {
		return &SubmissionError{API: CreateDirectoryAPI, Result: res}
	}

	log.Info("directory entry created", "userid", entry.UserID)
	return nil
}
