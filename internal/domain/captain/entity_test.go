package captain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptain_Validate(t *testing.T) {
	tests := []struct {
		name    string
		captain *Captain
		wantErr error
	}{
		{"正常な船長", NewCaptain(7, "Edward Smith", "British"), nil},
		{"負のID", NewCaptain(-7, "Edward Smith", "British"), ErrInvalidID},
		{"氏名未指定", NewCaptain(7, "", "British"), ErrFullNameRequired},
		{"氏名が長すぎる", NewCaptain(7, strings.Repeat("e", 129), "British"), ErrFullNameTooLong},
		{"氏名に数字", NewCaptain(7, "Edward Smith 2", "British"), ErrFullNameHasDigits},
		{"国籍未指定", NewCaptain(7, "Edward Smith", ""), ErrNationalityRequired},
		{"国籍が長すぎる", NewCaptain(7, "Edward Smith", strings.Repeat("b", 25)), ErrNationalityTooLong},
		{"国籍に数字", NewCaptain(7, "Edward Smith", "Brit1sh"), ErrNationalityHasDigits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.captain.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
