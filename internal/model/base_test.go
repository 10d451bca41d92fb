package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableStringAbsent(t *testing.T) {
	var req UpdateEnquiryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"viewed"}`), &req))
	assert.False(t, req.Assignee.Set)
}

func TestNullableStringNull(t *testing.T) {
	var req UpdateEnquiryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"assignee":null}`), &req))
	assert.True(t, req.Assignee.Set)
	assert.Empty(t, req.Assignee.Value)
}

func TestNullableStringEmpty(t *testing.T) {
	var req UpdateEnquiryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"assignee":""}`), &req))
	assert.True(t, req.Assignee.Set)
	assert.Empty(t, req.Assignee.Value)
}

func TestNullableStringValue(t *testing.T) {
	var req UpdateEnquiryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"assignee":"abc"}`), &req))
	assert.True(t, req.Assignee.Set)
	assert.Equal(t, "abc", req.Assignee.Value)
}

func TestPaginationNormalize(t *testing.T) {
	cases := []struct {
		name      string
		in        Pagination
		wantPage  int
		wantLimit int
	}{
		{"defaults", Pagination{}, 1, 10},
		{"negative", Pagination{Page: -2, Limit: -5}, 1, 10},
		{"capped", Pagination{Page: 3, Limit: 500}, 3, 100},
		{"passthrough", Pagination{Page: 2, Limit: 25}, 2, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Normalize()
			assert.Equal(t, tc.wantPage, tc.in.Page)
			assert.Equal(t, tc.wantLimit, tc.in.Limit)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestValidClinicService(t *testing.T) {
	for _, s := range ClinicServices {
		assert.True(t, ValidClinicService(s))
	}
	assert.False(t, ValidClinicService("Tarot Reading"))
	assert.False(t, ValidClinicService("home care"))
}

func TestValidEnquiryStatus(t *testing.T) {
	assert.True(t, ValidEnquiryStatus(EnquiryStatusNew))
	assert.True(t, ValidEnquiryStatus(EnquiryStatusViewed))
	assert.True(t, ValidEnquiryStatus(EnquiryStatusCompleted))
	assert.False(t, ValidEnquiryStatus("archived"))
}
