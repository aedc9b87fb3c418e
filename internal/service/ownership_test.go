package service

import "testing"

func TestAuthorizeMutation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		ownerID   string
		requester string
		want      bool
	}{
		{"owner may mutate", "user-1", "user-1", true},
		{"other user denied", "user-1", "user-2", false},
		{"empty requester denied", "user-1", "", false},
		{"empty owner denied", "", "user-1", false},
		{"both empty denied", "", "", false},
		{"prefix is not a match", "user-1", "user-10", false},
		{"case differs", "User-1", "user-1", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := AuthorizeMutation(tt.ownerID, tt.requester); got != tt.want {
				t.Errorf("AuthorizeMutation(%q, %q) = %v, want %v", tt.ownerID, tt.requester, got, tt.want)
			}
		})
	}
}
