package errors

import (
	"fmt"
	"testing"
)

func TestToBody_MapsStatus(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewValidation("bad input", nil), CodeValidation, 400},
		{NewNotFound("order", "abc"), CodeNotFound, 404},
		{NewInternal("boom", nil), CodeInternal, 500},
		{NewUnavailable("down", nil), CodeUnavailable, 503},
		{fmt.Errorf("raw driver error"), CodeInternal, 500},
	}

	for _, tc := range cases {
		body := ToBody(tc.err)
		if body.Code != tc.code {
			t.Errorf("expected code %s, got %s", tc.code, body.Code)
		}
		if body.Status != tc.status {
			t.Errorf("expected status %d, got %d", tc.status, body.Status)
		}
	}
}

func TestToBody_HidesRawErrors(t *testing.T) {
	body := ToBody(fmt.Errorf("connection reset by peer"))
	if body.Message != "An internal error occurred" {
		t.Errorf("raw error leaked: %q", body.Message)
	}
}

func TestFromBody_UnknownCodeBecomesInternal(t *testing.T) {
	err := FromBody(ErrorBody{Code: "SOMETHING_ELSE", Message: "weird"})
	if err.Code != CodeInternal {
		t.Errorf("expected %s, got %s", CodeInternal, err.Code)
	}
}

func TestFromBody_RoundTrip(t *testing.T) {
	original := NewNotFound("order", "abc-123")
	restored := FromBody(ToBody(original))

	if restored.Code != original.Code || restored.Message != original.Message {
		t.Errorf("round trip mismatch: %+v vs %+v", restored, original)
	}
}

func TestWrap_KeepsCode(t *testing.T) {
	wrapped := Wrap(NewNotFound("order", "x"), "lookup failed")
	if !Is(wrapped, CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %s", wrapped.Code)
	}
}
