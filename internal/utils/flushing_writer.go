package utils

import (
	"io"
	"sync"
)

type flushableWriter interface {
	Flush() error
}

// FlushingWriter forwards writes to a destination writer and flushes it after every write,
// so migration progress lines reach the operator as soon as they are produced instead of
// sitting in a buffer until the run ends.
type FlushingWriter struct {
	destination io.Writer
	writeMutex  sync.Mutex
}

// NewFlushingWriter wraps the destination writer. Destinations without a Flush method pass
// through unchanged, and an already-wrapped writer is returned as-is.
func NewFlushingWriter(destination io.Writer) io.Writer {
	if destination == nil {
		return nil
	}
	if _, alreadyFlushing := destination.(*FlushingWriter); alreadyFlushing {
		return destination
	}
	return &FlushingWriter{destination: destination}
}

// Write forwards the data and flushes the destination when it supports flushing. Writes are
// serialized so interleaved outcome lines stay whole.
func (writer *FlushingWriter) Write(data []byte) (int, error) {
	if writer == nil || writer.destination == nil {
		return 0, nil
	}

	writer.writeMutex.Lock()
	defer writer.writeMutex.Unlock()

	writtenByteCount, writeError := writer.destination.Write(data)
	if writeError != nil {
		return writtenByteCount, writeError
	}

	if flushableDestination, supportsFlush := writer.destination.(flushableWriter); supportsFlush {
		if flushError := flushableDestination.Flush(); flushError != nil {
			return writtenByteCount, flushError
		}
	}

	return writtenByteCount, nil
}
