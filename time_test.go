package weave

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/weave-escrow/errors"
)

func TestUnixDurationUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    UnixDuration
		wantErr *errors.Error
	}{
		"seconds": {
			raw:  "3600",
			want: 3600,
		},
		"duration string": {
			raw:  `"1h"`,
			want: 3600,
		},
		"invalid string": {
			raw:     `"one hour"`,
			wantErr: errors.ErrInput,
		},
		"invalid type": {
			raw:     `true`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixDuration
			err := json.Unmarshal([]byte(tc.raw), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil && got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestUnixTimeAdd(t *testing.T) {
	base := AsUnixTime(time.Unix(1000, 0))
	if got := base.Add(90 * time.Second); got != 1090 {
		t.Fatalf("want 1090, got %d", got)
	}
	if got := base.Add(-time.Minute); got != 940 {
		t.Fatalf("want 940, got %d", got)
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Unix(5000, 0)
	ctx := WithBlockTime(context.Background(), now)

	if !IsExpired(ctx, AsUnixTime(now)) {
		t.Fatal("expiration must be inclusive")
	}
	if !IsExpired(ctx, AsUnixTime(now).Add(-time.Second)) {
		t.Fatal("past time must be expired")
	}
	if IsExpired(ctx, AsUnixTime(now).Add(time.Second)) {
		t.Fatal("future time must not be expired")
	}
}

func TestIsExpiredWithoutBlockTime(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	IsExpired(context.Background(), 1)
}
