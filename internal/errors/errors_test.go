package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *E
		want string
	}{
		{
			name: "without cause",
			err:  New(SessionExpired, "session expired"),
			want: "session_expired: session expired",
		},
		{
			name: "with cause",
			err:  Wrap(ConnectFailed, "database connection verification failed", fmt.Errorf("dial tcp: refused")),
			want: "connect_failed: database connection verification failed: dial tcp: refused",
		},
		{
			name: "storage unavailable",
			err:  Wrap(StorageUnavailable, "secure storage is not available on this system", fmt.Errorf("no backend")),
			want: "storage_unavailable: secure storage is not available on this system: no backend",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := fmt.Errorf("keychain locked")
	err := Wrap(StorageUnavailable, "secure storage is not available", cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}

	var e *E
	if !stderrors.As(err, &e) {
		t.Fatal("expected errors.As to match *E")
	}
	if e.Kind != StorageUnavailable {
		t.Errorf("Kind = %q, want %q", e.Kind, StorageUnavailable)
	}
}

func TestUnwrapNilWhenNoCause(t *testing.T) {
	err := New(ConnectFailed, "verification failed")
	if err.Unwrap() != nil {
		t.Error("expected nil cause for New")
	}
}
