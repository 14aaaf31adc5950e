package repository

import (
	"testing"

	"user-group-app/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderBy(t *testing.T) {
	tests := []struct {
		name    string
		sort    *model.Sort
		want    string
		wantErr error
	}{
		{name: "no sort", sort: nil, want: "ORDER BY id"},
		{
			name: "asc",
			sort: &model.Sort{Field: "lastName", Order: model.ASC},
			want: "ORDER BY last_name ASC NULLS FIRST, id",
		},
		{
			name: "desc",
			sort: &model.Sort{Field: "registeredDate", Order: model.DESC},
			want: "ORDER BY registered_date DESC NULLS LAST, id",
		},
		{
			name:    "unknown field",
			sort:    &model.Sort{Field: "password; DROP TABLE app_user", Order: model.ASC},
			wantErr: ErrUnknownSortField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := orderBy(tt.sort, appUserColumns, "id")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
