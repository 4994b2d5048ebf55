package shared_test

import (
	"lodge/shared"
	"lodge/shared/constant"
	"lodge/shared/dto"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{
			name:     "empty string returns nil",
			input:    "",
			expected: nil,
		},
		{
			name:     "valid true string",
			input:    "true",
			expected: boolPtr(true),
		},
		{
			name:     "valid false string",
			input:    "false",
			expected: boolPtr(false),
		},
		{
			name:     "valid 1 string",
			input:    "1",
			expected: boolPtr(true),
		},
		{
			name:     "valid 0 string",
			input:    "0",
			expected: boolPtr(false),
		},
		{
			name:     "invalid string returns nil",
			input:    "invalid",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}
			} else {
				if result == nil {
					t.Errorf("expected %v, got nil", *tt.expected)
				} else if *result != *tt.expected {
					t.Errorf("expected %v, got %v", *tt.expected, *result)
				}
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{
			name:     "zero total returns 1",
			total:    0,
			limit:    10,
			expected: 1,
		},
		{
			name:     "zero limit returns 1",
			total:    100,
			limit:    0,
			expected: 1,
		},
		{
			name:     "negative limit returns 1",
			total:    100,
			limit:    -5,
			expected: 1,
		},
		{
			name:     "exact division",
			total:    100,
			limit:    10,
			expected: 10,
		},
		{
			name:     "division with remainder",
			total:    101,
			limit:    10,
			expected: 11,
		},
		{
			name:     "limit greater than total",
			total:    5,
			limit:    10,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.CalculateTotalPage(tt.total, tt.limit)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type TestStruct struct {
		Name     string `db:"name"`
		City     string `db:"city"`
		Empty    string `db:"empty_field"`
		NoDBTag  string
		NoTagVal string `db:""`
	}

	tests := []struct {
		name     string
		data     interface{}
		username string
		expected map[string]any
	}{
		{
			name: "struct with populated fields",
			data: TestStruct{
				Name:     "Grand Plaza",
				City:     "Lisbon",
				Empty:    "",
				NoDBTag:  "ignored",
				NoTagVal: "ignored",
			},
			username: "operator-a",
			expected: map[string]any{
				"name": "Grand Plaza",
				"city": "Lisbon",
			},
		},
		{
			name:     "struct with all zero values",
			data:     TestStruct{},
			username: "operator-a",
			expected: map[string]any{},
		},
		{
			name: "struct with partial fields",
			data: TestStruct{
				City: "Porto",
			},
			username: "operator-b",
			expected: map[string]any{
				"city": "Porto",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.TransformFields(tt.data, tt.username)

			if result[constant.FieldModifiedAt] == nil {
				t.Error("expected modified_at to be set")
			}
			if result[constant.FieldModifiedBy] != tt.username {
				t.Errorf("expected modified_by to be %s, got %v", tt.username, result[constant.FieldModifiedBy])
			}

			if _, ok := result[constant.FieldModifiedAt].(time.Time); !ok {
				t.Error("expected modified_at to be a time.Time")
			}

			for key, expectedValue := range tt.expected {
				if actualValue, exists := result[key]; !exists {
					t.Errorf("expected field %s to exist", key)
				} else if !reflect.DeepEqual(actualValue, expectedValue) {
					t.Errorf("expected field %s to be %v, got %v", key, expectedValue, actualValue)
				}
			}

			for key := range result {
				if key == constant.FieldModifiedAt || key == constant.FieldModifiedBy {
					continue
				}
				if _, expected := tt.expected[key]; !expected {
					t.Errorf("unexpected field %s in result", key)
				}
			}
		})
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("res-123", "id", "reservations")

	if len(group.Filters) != 1 {
		t.Fatalf("expected a single filter, got %d", len(group.Filters))
	}

	filter, ok := group.Filters[0].(dto.Filter)
	if !ok {
		t.Fatalf("expected filter to be a dto.Filter, got %T", group.Filters[0])
	}

	if filter.Field != "id" {
		t.Errorf("expected field to be 'id', got %s", filter.Field)
	}
	if filter.Value != "res-123" {
		t.Errorf("expected value to be 'res-123', got %v", filter.Value)
	}
	if filter.Operator != dto.FilterOperatorEq {
		t.Errorf("expected operator to be eq, got %s", filter.Operator)
	}
	if filter.Table != "reservations" {
		t.Errorf("expected table to be 'reservations', got %s", filter.Table)
	}
}

func TestBuildCacheKey(t *testing.T) {
	key := shared.BuildCacheKey("reservation:get", "res-123")

	if key != "reservation:get:res-123" {
		t.Errorf("expected key to be 'reservation:get:res-123', got %s", key)
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	req := dto.QueryParams{Page: 1, Limit: 10}
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    "status",
				Value:    "BOOKED",
				Operator: dto.FilterOperatorEq,
			},
		},
	}

	key1 := shared.BuildCacheKeyWithQuery("reservation:gets", req, filter)
	key2 := shared.BuildCacheKeyWithQuery("reservation:gets", req, filter)

	if key1 != key2 {
		t.Errorf("expected identical inputs to yield identical keys, got %s and %s", key1, key2)
	}

	if !strings.HasPrefix(key1, "reservation:gets:") {
		t.Errorf("expected key to start with prefix, got %s", key1)
	}

	otherReq := dto.QueryParams{Page: 2, Limit: 10}
	key3 := shared.BuildCacheKeyWithQuery("reservation:gets", otherReq, filter)

	if key1 == key3 {
		t.Error("expected different query params to yield a different key")
	}
}

func boolPtr(b bool) *bool {
	return &b
}
