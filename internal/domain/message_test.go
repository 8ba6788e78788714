package domain

import (
	"errors"
	"testing"
)

func TestDecodeInbound(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Inbound
		wantErr bool
	}{
		{name: "join", raw: `{"type":"join","room":"R1","speaker":"Patient"}`, want: Join{Room: "R1", Speaker: "Patient"}},
		{name: "join missing speaker", raw: `{"type":"join","room":"R1"}`, wantErr: true},
		{name: "join empty room", raw: `{"type":"join","room":"","speaker":"Doctor"}`, wantErr: true},
		{name: "audio", raw: `{"type":"audio","data":"AAA="}`, want: Audio{Data: "AAA="}},
		{name: "audio missing data", raw: `{"type":"audio"}`, wantErr: true},
		{name: "checklist", raw: `{"type":"update_checklist","step":"Medical History"}`, want: UpdateChecklist{Step: "Medical History"}},
		{name: "checklist empty step accepted", raw: `{"type":"update_checklist","step":""}`, want: UpdateChecklist{Step: ""}},
		{name: "checklist missing step", raw: `{"type":"update_checklist"}`, wantErr: true},
		{name: "unknown", raw: `{"type":"ping"}`, want: Unknown{Type: "ping"}},
		{name: "no type", raw: `{}`, want: Unknown{}},
		{name: "not json", raw: `hello`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeInbound([]byte(tt.raw))
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedMessage) {
					t.Fatalf("expected ErrMalformedMessage, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestNewRole(t *testing.T) {
	if _, err := NewRole(""); !errors.Is(err, ErrRoleEmpty) {
		t.Errorf("expected ErrRoleEmpty, got %v", err)
	}
	long := make([]byte, MaxRoleLen+1)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := NewRole(string(long)); !errors.Is(err, ErrRoleTooLong) {
		t.Errorf("expected ErrRoleTooLong, got %v", err)
	}
	if r, err := NewRole("Nurse"); err != nil || r != "Nurse" {
		t.Errorf("expected free-form role to be accepted, got %q %v", r, err)
	}
}
