// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/housesim/db"
	"github.com/danielhkuo/housesim/testutil"
)

func TestCreateSchema_Idempotent(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("second CreateSchema failed: %v", err)
	}
}

func TestEnsureStates_SeedsAndRoundTrips(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	ctx := context.Background()
	want := testutil.LoadStates(t)

	got, err := db.EnsureStates(ctx, conn, want)
	if err != nil {
		t.Fatalf("EnsureStates failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stored states differ (-want +got):\n%s", diff)
	}

	// A populated table is not reseeded.
	again, err := db.EnsureStates(ctx, conn, want[:1])
	if err != nil {
		t.Fatalf("EnsureStates on populated table failed: %v", err)
	}
	if len(again) != len(want) {
		t.Errorf("expected %d states, got %d", len(want), len(again))
	}
}

func TestSeedStates_Upserts(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	ctx := context.Background()
	states := testutil.LoadStates(t)

	if err := db.SeedStates(ctx, conn, states); err != nil {
		t.Fatal(err)
	}

	states[0].Population += 1000
	if err := db.SeedStates(ctx, conn, states); err != nil {
		t.Fatal(err)
	}

	n, err := db.CountStates(ctx, conn)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(states) {
		t.Errorf("expected %d rows, got %d", len(states), n)
	}

	got, err := db.LoadStates(ctx, conn)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Population != states[0].Population {
		t.Errorf("expected updated population %d, got %d", states[0].Population, got[0].Population)
	}
}

func TestLoadStates_RejectsIncompleteData(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	ctx := context.Background()
	states := testutil.LoadStates(t)

	if err := db.SeedStates(ctx, conn, states[:10]); err != nil {
		t.Fatal(err)
	}
	if _, err := db.LoadStates(ctx, conn); err == nil {
		t.Error("expected validation error for partial data")
	}
}

func TestDriverName(t *testing.T) {
	tests := []struct {
		dbType  string
		want    string
		wantErr bool
	}{
		{"sqlite", "sqlite", false},
		{"postgres", "postgres", false},
		{"mysql", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.dbType, func(t *testing.T) {
			got, err := db.DriverName(tt.dbType)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DriverName(%q) error = %v", tt.dbType, err)
			}
			if got != tt.want {
				t.Errorf("DriverName(%q) = %q, want %q", tt.dbType, got, tt.want)
			}
		})
	}
}
