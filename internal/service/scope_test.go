package service

import (
	"testing"

	"github.com/fortresslabs/garrison/internal/entity"
)

func TestReadScope(t *testing.T) {
	cases := []struct {
		name      string
		principal entity.Principal
		requested string
		want      string
	}{
		{"admin all bases", entity.Principal{Role: entity.RoleAdmin}, "", ""},
		{"admin narrows", entity.Principal{Role: entity.RoleAdmin}, "base-a", "base-a"},
		{"officer all bases", entity.Principal{Role: entity.RoleLogisticsOfficer, BaseID: "base-a"}, "", ""},
		{"officer narrows to foreign base", entity.Principal{Role: entity.RoleLogisticsOfficer, BaseID: "base-a"}, "base-b", "base-b"},
		{"commander pinned", entity.Principal{Role: entity.RoleBaseCommander, BaseID: "base-a"}, "", "base-a"},
		{"commander request ignored", entity.Principal{Role: entity.RoleBaseCommander, BaseID: "base-a"}, "base-b", "base-a"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ReadScope(tc.principal, tc.requested); got != tc.want {
				t.Errorf("ReadScope(%v, %q) = %q, want %q", tc.principal, tc.requested, got, tc.want)
			}
		})
	}
}

func TestMetricsScope(t *testing.T) {
	cases := []struct {
		name      string
		principal entity.Principal
		requested string
		want      string
	}{
		{"admin all bases", entity.Principal{Role: entity.RoleAdmin}, "", ""},
		{"admin narrows", entity.Principal{Role: entity.RoleAdmin}, "base-b", "base-b"},
		{"officer pinned", entity.Principal{Role: entity.RoleLogisticsOfficer, BaseID: "base-a"}, "base-b", "base-a"},
		{"commander pinned", entity.Principal{Role: entity.RoleBaseCommander, BaseID: "base-a"}, "base-b", "base-a"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MetricsScope(tc.principal, tc.requested); got != tc.want {
				t.Errorf("MetricsScope(%v, %q) = %q, want %q", tc.principal, tc.requested, got, tc.want)
			}
		})
	}
}
