package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/tidalfest/internal/i18n"
	"github.com/desertthunder/tidalfest/internal/models"
	"github.com/desertthunder/tidalfest/internal/normalizer"
	"github.com/desertthunder/tidalfest/internal/services"
	"github.com/desertthunder/tidalfest/internal/shared"
	tu "github.com/desertthunder/tidalfest/internal/testing"
)

func TestResolve(t *testing.T) {
	t.Run("Fetch Then Normalize", func(t *testing.T) {
		fetcher := tu.NewMockFetcher(tu.FetchResponse{Payload: map[string]any{
			"festivalLineup": tu.LineupPayload([]string{"Air"}, []string{"Moby"}, nil),
		}})

		result, err := Resolve(context.Background(), fetcher, nil, "abc")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Days[0].SpecialGuests[0].Name != "Moby" {
			t.Errorf("unexpected result %+v", result)
		}
		if calls := fetcher.Calls(); len(calls) != 1 || calls[0] != "abc" {
			t.Errorf("unexpected calls %v", calls)
		}
	})

	t.Run("Fetch Error Skips Normalize", func(t *testing.T) {
		fetcher := tu.NewMockFetcher(tu.FetchResponse{Err: &services.NetworkError{Err: errors.New("refused")}})
		called := false

		_, err := Resolve(context.Background(), fetcher, func(any) (*models.Result, error) {
			called = true
			return nil, nil
		}, "abc")

		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected unavailable error, got %v", err)
		}
		if called {
			t.Error("expected normalize to be skipped")
		}
	})

	t.Run("Schema Error", func(t *testing.T) {
		fetcher := tu.NewMockFetcher(tu.FetchResponse{Payload: map[string]any{"foo": float64(1)}})

		_, err := Resolve(context.Background(), fetcher, nil, "abc")
		if !errors.Is(err, shared.ErrSchema) {
			t.Errorf("expected schema error, got %v", err)
		}
	})
}

func TestDescribe(t *testing.T) {
	en := i18n.Lookup(i18n.English)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"Nil", nil, ""},
		{"Network", &services.NetworkError{Err: errors.New("connection refused")}, "Could not reach the server: connection refused"},
		{"HTTP", &services.HTTPError{Status: 500, StatusText: "Internal Server Error", Excerpt: "server exploded"}, "Error 500: Internal Server Error - server exploded"},
		{"Decode", &services.DecodeError{Excerpt: "<html>"}, "Could not parse the server response: <html>"},
		{"Unrecognized", &normalizer.SchemaError{Reason: normalizer.ReasonUnrecognized}, en.SchemaFailure},
		{"Backend Reported", &normalizer.SchemaError{Reason: "Festival not ready", BackendReported: true}, "The server reported an error: Festival not ready"},
		{"Backend Reported Without Text", &normalizer.SchemaError{BackendReported: true}, en.SchemaFailure},
		{"Deadline", context.DeadlineExceeded, "Could not reach the server: context deadline exceeded"},
		{"Unknown", errors.New("boom"), en.UnknownFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.err, en); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("Defaults To Spanish", func(t *testing.T) {
		got := Describe(&services.HTTPError{Status: 404, StatusText: "Not Found"}, nil)
		if !strings.HasPrefix(got, "Error 404") {
			t.Errorf("unexpected message %q", got)
		}
	})
}
