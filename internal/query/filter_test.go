package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmpty(t *testing.T) {
	f, err := Normalize(url.Values{}, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, Page{Number: DefaultPage, Size: DefaultLimit}, f.Page)
	assert.Empty(t, f.Name)
	assert.Nil(t, f.Country)
	assert.Nil(t, f.Status)
	assert.Nil(t, f.AgentType)
	assert.Nil(t, f.StartDate)
	assert.Nil(t, f.EndDate)
	assert.Nil(t, f.MinAmount)
	assert.Nil(t, f.MaxAmount)
	assert.Empty(t, f.Predicates())
}

func TestNormalizePageAndLimit(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    Page
		wantErr error
	}{
		{name: "defaults", query: "", want: Page{Number: 1, Size: 10}},
		{name: "explicit", query: "page=3&limit=25", want: Page{Number: 3, Size: 25}},
		{name: "empty values", query: "page=&limit=", want: Page{Number: 1, Size: 10}},
		{name: "zero falls back", query: "page=0&limit=0", want: Page{Number: 1, Size: 10}},
		{name: "non-numeric page", query: "page=abc", wantErr: ErrInvalidPage},
		{name: "non-numeric limit", query: "limit=ten", wantErr: ErrInvalidLimit},
		{name: "negative page", query: "page=-1", wantErr: ErrInvalidPage},
		{name: "negative limit", query: "limit=-5", wantErr: ErrInvalidLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			f, err := Normalize(values, time.UTC)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Page)
		})
	}
}

func TestNormalizeMultiValues(t *testing.T) {
	values, err := url.ParseQuery("country=CL&country=PER&status=active&agentType[]=YAPE&agentType=&name=Juan")
	require.NoError(t, err)

	f, err := Normalize(values, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, []string{"CL", "PER"}, f.Country)
	assert.Equal(t, []string{"active"}, f.Status)
	assert.Equal(t, []string{"YAPE"}, f.AgentType)
	assert.Equal(t, "Juan", f.Name)
	assert.Empty(t, f.Surname)
}

func TestNormalizeOnlyEmptyMultiValues(t *testing.T) {
	values, err := url.ParseQuery("country=&status=")
	require.NoError(t, err)

	f, err := Normalize(values, time.UTC)
	require.NoError(t, err)

	// An empty selection is no constraint, not "match nothing".
	assert.Nil(t, f.Country)
	assert.Nil(t, f.Status)
	assert.Empty(t, f.Predicates())
}

func TestNormalizeDates(t *testing.T) {
	loc := time.FixedZone("CLT", -4*60*60)
	values, err := url.ParseQuery("startDate=01/07/2025&endDate=5/7/2025")
	require.NoError(t, err)

	f, err := Normalize(values, loc)
	require.NoError(t, err)

	require.NotNil(t, f.StartDate)
	require.NotNil(t, f.EndDate)
	assert.True(t, f.StartDate.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, loc)))
	assert.True(t, f.EndDate.Equal(time.Date(2025, 7, 5, 23, 59, 59, 999000000, loc)))
}

func TestNormalizeBadDatesAreDropped(t *testing.T) {
	values, err := url.ParseQuery("startDate=2025-07-01&endDate=31/02/2025")
	require.NoError(t, err)

	f, err := Normalize(values, time.UTC)
	require.NoError(t, err)

	assert.Nil(t, f.StartDate)
	assert.Nil(t, f.EndDate)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"1500", 1500, true},
		{"$1.500", 1500, true},
		{"$ 2.000.000", 2000000, true},
		{"0", 0, false},
		{"-10", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseAmount(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseAmount(%q) = %d, %v, want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNormalizeAmounts(t *testing.T) {
	values, err := url.ParseQuery("minAmount=1000&maxAmount=0")
	require.NoError(t, err)

	f, err := Normalize(values, time.UTC)
	require.NoError(t, err)

	require.NotNil(t, f.MinAmount)
	assert.Equal(t, int64(1000), *f.MinAmount)
	// Zero is treated as absent, not as "at most zero".
	assert.Nil(t, f.MaxAmount)
}
