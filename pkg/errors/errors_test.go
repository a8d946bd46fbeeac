package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestNewFormatsMessage(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "unsupported format: %s", "gif")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFormat)
	}
	if want := "INVALID_FORMAT: unsupported format: gif"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrCodeFileNotFound, fs.ErrNotExist, "open %s", "obs.csv")

	if want := "FILE_NOT_FOUND: open obs.csv: file does not exist"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should see the wrapped cause")
	}
	if errors.Unwrap(err) != fs.ErrNotExist {
		t.Error("Unwrap should return the cause")
	}
}

func TestCodeLookup(t *testing.T) {
	obsErr := New(ErrCodeInvalidDataset, "observation 3: user is required")

	tests := []struct {
		name     string
		err      error
		wantCode Code
		wantMsg  string
	}{
		{"coded", obsErr, ErrCodeInvalidDataset, "observation 3: user is required"},
		{"behind fmt wrapping", fmt.Errorf("load: %w", obsErr), ErrCodeInvalidDataset, "observation 3: user is required"},
		{"outermost code wins", Wrap(ErrCodeInvalidInput, obsErr, "decode request"), ErrCodeInvalidInput, "decode request"},
		{"plain error", errors.New("disk full"), "", "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q", got, tt.wantCode)
			}
			if got := UserMessage(tt.err); got != tt.wantMsg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantMsg)
			}
			if tt.wantCode != "" && !Is(tt.err, tt.wantCode) {
				t.Errorf("Is(%q) should be true", tt.wantCode)
			}
			if Is(tt.err, ErrCodeZeroTotal) {
				t.Error("Is(ZERO_TOTAL) should be false")
			}
		})
	}
}

func TestIsNil(t *testing.T) {
	if Is(nil, ErrCodeInternal) {
		t.Error("Is(nil) should be false")
	}
	if GetCode(nil) != "" {
		t.Error("GetCode(nil) should be empty")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid dataset", New(ErrCodeInvalidDataset, "bad"), 400},
		{"empty dataset", New(ErrCodeEmptyDataset, "empty"), 400},
		{"zero total", New(ErrCodeZeroTotal, "zero"), 400},
		{"wrapped format", Wrap(ErrCodeInvalidFormat, errors.New("x"), "bad format"), 400},
		{"file not found", New(ErrCodeFileNotFound, "missing"), 404},
		{"unsupported", New(ErrCodeUnsupported, "png"), 501},
		{"internal", New(ErrCodeInternal, "encode"), 500},
		{"plain error", errors.New("plain"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
