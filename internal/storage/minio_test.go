package storage

import (
	"errors"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
)

func TestObservationPrefix(t *testing.T) {
	if got := ObservationPrefix(42); got != "observations/42/" {
		t.Errorf("ObservationPrefix(42) = %q, want observations/42/", got)
	}
}

func TestDrainRemoveResults(t *testing.T) {
	results := make(chan minio.RemoveObjectError, 3)
	results <- minio.RemoveObjectError{ObjectName: "observations/1/a.jpg", Err: errors.New("access denied")}
	results <- minio.RemoveObjectError{ObjectName: "observations/1/b.jpg", Err: errors.New("access denied")}
	results <- minio.RemoveObjectError{ObjectName: "observations/1/c.jpg", Err: errors.New("access denied")}
	close(results)

	canceled := false
	err := drainRemoveResults(results, func() { canceled = true })

	if err == nil || !strings.Contains(err.Error(), "a.jpg") {
		t.Fatalf("want first failure surfaced, got %v", err)
	}
	if !canceled {
		t.Error("lister should be canceled after the first failure")
	}

	// Everything after the first failure must still have been consumed, or
	// the lister would stay blocked sending into RemoveObjects.
	if _, ok := <-results; ok {
		t.Error("results channel should be fully drained")
	}
}

func TestDrainRemoveResultsClean(t *testing.T) {
	results := make(chan minio.RemoveObjectError)
	close(results)

	if err := drainRemoveResults(results, func() {
		t.Error("cancel should not fire without a failure")
	}); err != nil {
		t.Errorf("drainRemoveResults on clean run = %v, want nil", err)
	}
}
