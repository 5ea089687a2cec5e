package guard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		uid     int
		marker  bool
		wantErr string
	}{
		{name: "regular user", uid: 1000},
		{name: "root", uid: 0, wantErr: "root"},
		{name: "root with marker reports root", uid: 0, marker: true, wantErr: "root"},
		{name: "marker", uid: 1000, marker: true, wantErr: "/etc/astroberry.version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.uid, "/etc/astroberry.version", tt.marker)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var precondition *PreconditionError
			assert.True(t, errors.As(err, &precondition))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
