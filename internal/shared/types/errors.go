package types

import (
	"errors"
	"fmt"
)

var (
	ErrNoData             = errors.New("no data: the cleaned dataset is empty")
	ErrMissingColumn      = errors.New("missing column")
	ErrMalformedValue     = errors.New("malformed value")
	ErrUnsupportedFormat  = errors.New("unsupported input format")
	ErrInvalidS3URI       = errors.New("invalid S3 URI, expected s3://bucket/key")
	ErrUnknownMetric      = errors.New("unknown metric")
	ErrUnknownGranularity = errors.New("unknown granularity")
)

// ColumnError reports a required column that is not present in the input header.
type ColumnError struct {
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingColumn, e.Column)
}

func (e *ColumnError) Unwrap() error { return ErrMissingColumn }

// ValueError reports a cell that could not be coerced while cleaning in strict mode.
type ValueError struct {
	Line   int
	Column string
	Value  string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s at line %d, column %q: %q", ErrMalformedValue, e.Line, e.Column, e.Value)
}

func (e *ValueError) Unwrap() error { return ErrMalformedValue }
