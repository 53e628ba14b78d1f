package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpost/mcpost/internal/fixtures"
	"github.com/mcpost/mcpost/postoffice"
)

// ─── handleGetPackagesForCourier ──────────────────────────────────────────────

func TestHandleGetPackagesForCourier(t *testing.T) {
	t.Run("formats the full report", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesCSV)
		res, err := srv.handleGetPackagesForCourier(t.Context(), toolReq(map[string]any{"courier_id": 1.0}))
		require.NoError(t, err)
		require.False(t, isErrorResult(res))
		want := `Packages for Courier 1:

Package PKG001:
  Label: FRAGILE
  Weight: 2.5 kg
  Size: 10x10x10
  From: Alice (123 St)
  To: Bob (456 Ave)

Package PKG002:
  Label: STANDARD
  Weight: 1.0 kg
  Size: 5x5x5
  From: Charlie (789 Rd)
  To: Dave (101 Blvd)
`
		assert.Equal(t, want, firstText(t, res))
	})
	t.Run("no packages", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesCSV)
		res, err := srv.handleGetPackagesForCourier(t.Context(), toolReq(map[string]any{"courier_id": 3.0}))
		require.NoError(t, err)
		assert.False(t, isErrorResult(res))
		assert.Equal(t, "No packages found for courier 3", firstText(t, res))
	})
	t.Run("missing courier_id", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesCSV)
		res, err := srv.handleGetPackagesForCourier(t.Context(), toolReq(nil))
		require.NoError(t, err)
		assert.True(t, isErrorResult(res))
		assert.Contains(t, firstText(t, res), "courier_id is required")
	})
	t.Run("malformed courier in file", func(t *testing.T) {
		srv := newTestServer(t, "package_id,delivery_guy\nPKG001,nobody\n")
		res, err := srv.handleGetPackagesForCourier(t.Context(), toolReq(map[string]any{"courier_id": 1.0}))
		require.NoError(t, err)
		assert.True(t, isErrorResult(res))
		assert.Contains(t, firstText(t, res), "bad delivery_guy value")
	})
}

// ─── handleGetPackageDetails ──────────────────────────────────────────────────

func TestHandleGetPackageDetails(t *testing.T) {
	t.Run("formats the full report", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesCSV)
		res, err := srv.handleGetPackageDetails(t.Context(), toolReq(map[string]any{"package_id": "PKG001"}))
		require.NoError(t, err)
		require.False(t, isErrorResult(res))
		want := `Package Details: PKG001
Assigned to: Courier 1
Label: FRAGILE
Weight: 2.5 kg
Size: 10x10x10

Sender:
  Name: Alice
  Address: 123 St

Receiver:
  Name: Bob
  Address: 456 Ave
`
		assert.Equal(t, want, firstText(t, res))
	})
	t.Run("not found is informational", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesCSV)
		res, err := srv.handleGetPackageDetails(t.Context(), toolReq(map[string]any{"package_id": "PKG999"}))
		require.NoError(t, err)
		assert.False(t, isErrorResult(res))
		assert.Equal(t, "Package PKG999 not found", firstText(t, res))
	})
	t.Run("missing package_id", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesCSV)
		res, err := srv.handleGetPackageDetails(t.Context(), toolReq(map[string]any{}))
		require.NoError(t, err)
		assert.True(t, isErrorResult(res))
		assert.Contains(t, firstText(t, res), "package_id is required")
	})
}

// ─── handleGetCourierStats ────────────────────────────────────────────────────

func TestHandleGetCourierStats(t *testing.T) {
	tests := []struct {
		name    string
		courier float64
		want    string
	}{
		{
			name:    "courier with mixed packages",
			courier: 1,
			want: "Delivery Statistics - Courier 1:\n" +
				"Total Packages: 2\n" +
				"Total Weight: 3.5 kg\n" +
				"Fragile Packages: 1\n" +
				"Urgent Packages: 0\n",
		},
		{
			name:    "courier with a single package",
			courier: 2,
			want: "Delivery Statistics - Courier 2:\n" +
				"Total Packages: 1\n" +
				"Total Weight: 5 kg\n" +
				"Fragile Packages: 0\n" +
				"Urgent Packages: 1\n",
		},
		{
			name:    "courier without packages",
			courier: 9,
			want: "Delivery Statistics - Courier 9:\n" +
				"Total Packages: 0\n" +
				"Total Weight: 0 kg\n" +
				"Fragile Packages: 0\n" +
				"Urgent Packages: 0\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, fixtures.TestPackagesCSV)
			res, err := srv.handleGetCourierStats(t.Context(), toolReq(map[string]any{"courier_id": tt.courier}))
			require.NoError(t, err)
			require.False(t, isErrorResult(res))
			assert.Equal(t, tt.want, firstText(t, res))
		})
	}
	t.Run("missing courier_id", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesCSV)
		res, err := srv.handleGetCourierStats(t.Context(), toolReq(nil))
		require.NoError(t, err)
		assert.True(t, isErrorResult(res))
		assert.Contains(t, firstText(t, res), "courier_id is required")
	})
}

// ─── handleListCouriers ───────────────────────────────────────────────────────

func TestHandleListCouriers(t *testing.T) {
	t.Run("sorted list", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesCSV)
		res, err := srv.handleListCouriers(t.Context(), toolReq(nil))
		require.NoError(t, err)
		require.False(t, isErrorResult(res))
		assert.Equal(t, "Available Couriers: 1, 2", firstText(t, res))
	})
	t.Run("empty store", func(t *testing.T) {
		srv := newTestServer(t, "package_id,delivery_guy\n")
		res, err := srv.handleListCouriers(t.Context(), toolReq(nil))
		require.NoError(t, err)
		require.False(t, isErrorResult(res))
		assert.Equal(t, "Available Couriers: ", firstText(t, res))
	})
	t.Run("malformed courier in file", func(t *testing.T) {
		srv := newTestServer(t, "package_id,delivery_guy\nPKG001,one\n")
		res, err := srv.handleListCouriers(t.Context(), toolReq(nil))
		require.NoError(t, err)
		assert.True(t, isErrorResult(res))
		assert.Contains(t, firstText(t, res), "bad delivery_guy value")
	})
}

// ─── handleSearchPackagesByLabel ──────────────────────────────────────────────

func TestHandleSearchPackagesByLabel(t *testing.T) {
	t.Run("lower case query matches upper case label", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesStatusCSV)
		res, err := srv.handleSearchPackagesByLabel(t.Context(), toolReq(map[string]any{"label": "fragile"}))
		require.NoError(t, err)
		require.False(t, isErrorResult(res))
		want := `Packages with label 'fragile':

PKG001 - Courier 1
  Status: pending
  Weight: 2.5 kg
  To: Bob
`
		assert.Equal(t, want, firstText(t, res))
	})
	t.Run("no matches", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesStatusCSV)
		res, err := srv.handleSearchPackagesByLabel(t.Context(), toolReq(map[string]any{"label": "BULK"}))
		require.NoError(t, err)
		assert.False(t, isErrorResult(res))
		assert.Equal(t, "No packages found with label: BULK", firstText(t, res))
	})
	t.Run("missing label", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesStatusCSV)
		res, err := srv.handleSearchPackagesByLabel(t.Context(), toolReq(nil))
		require.NoError(t, err)
		assert.True(t, isErrorResult(res))
		assert.Contains(t, firstText(t, res), "label is required")
	})
}

// ─── handleGetPackagesByStatus ────────────────────────────────────────────────

func TestHandleGetPackagesByStatus(t *testing.T) {
	t.Run("case insensitive match", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesStatusCSV)
		res, err := srv.handleGetPackagesByStatus(t.Context(), toolReq(map[string]any{"status": "PENDING"}))
		require.NoError(t, err)
		require.False(t, isErrorResult(res))
		want := `Packages with status 'PENDING':

PKG001 - Courier 1
  Label: FRAGILE
  Weight: 2.5 kg
  To: Bob
`
		assert.Equal(t, want, firstText(t, res))
	})
	t.Run("no matches", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesStatusCSV)
		res, err := srv.handleGetPackagesByStatus(t.Context(), toolReq(map[string]any{"status": "lost"}))
		require.NoError(t, err)
		assert.False(t, isErrorResult(res))
		assert.Equal(t, "No packages found with status: lost", firstText(t, res))
	})
	t.Run("no status column", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesCSV)
		res, err := srv.handleGetPackagesByStatus(t.Context(), toolReq(map[string]any{"status": "pending"}))
		require.NoError(t, err)
		assert.False(t, isErrorResult(res))
		assert.Equal(t, "No packages found with status: pending", firstText(t, res))
	})
}

// ─── handleUpdatePackageStatus ────────────────────────────────────────────────

func TestHandleUpdatePackageStatus(t *testing.T) {
	t.Run("updates and persists", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesStatusCSV)
		res, err := srv.handleUpdatePackageStatus(t.Context(), toolReq(map[string]any{
			"package_id": "PKG001", "new_status": "delivered",
		}))
		require.NoError(t, err)
		require.False(t, isErrorResult(res))
		assert.Equal(t, "Package PKG001 status updated from pending to delivered", firstText(t, res))

		reopened, err := postoffice.Open(srv.store.Path())
		require.NoError(t, err)
		rec, err := reopened.Package("PKG001")
		require.NoError(t, err)
		assert.Equal(t, "delivered", rec.Status)
	})
	t.Run("not found is informational", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesStatusCSV)
		res, err := srv.handleUpdatePackageStatus(t.Context(), toolReq(map[string]any{
			"package_id": "PKG999", "new_status": "delivered",
		}))
		require.NoError(t, err)
		assert.False(t, isErrorResult(res))
		assert.Equal(t, "Package PKG999 not found", firstText(t, res))
	})
	t.Run("missing new_status", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesStatusCSV)
		res, err := srv.handleUpdatePackageStatus(t.Context(), toolReq(map[string]any{"package_id": "PKG001"}))
		require.NoError(t, err)
		assert.True(t, isErrorResult(res))
		assert.Contains(t, firstText(t, res), "new_status is required")
	})
}

// ─── handleAddPackage ─────────────────────────────────────────────────────────

func TestHandleAddPackage(t *testing.T) {
	t.Run("adds and persists", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesCSV)
		res, err := srv.handleAddPackage(t.Context(), toolReq(map[string]any{
			"package_data": map[string]any{
				"package_id":   "PKG004",
				"delivery_guy": 3.0,
				"weight_kg":    0.5,
				"label":        "STANDARD",
			},
		}))
		require.NoError(t, err)
		require.False(t, isErrorResult(res))
		assert.Equal(t, "Package PKG004 added successfully", firstText(t, res))

		reopened, err := postoffice.Open(srv.store.Path())
		require.NoError(t, err)
		assert.Equal(t, 4, reopened.Len())
		rec, err := reopened.Package("PKG004")
		require.NoError(t, err)
		assert.Equal(t, "3", rec.Courier)
		assert.Equal(t, "0.5", rec.Weight)
		assert.Equal(t, "STANDARD", rec.Label)
	})
	t.Run("duplicate id", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesCSV)
		res, err := srv.handleAddPackage(t.Context(), toolReq(map[string]any{
			"package_data": map[string]any{"package_id": "PKG001"},
		}))
		require.NoError(t, err)
		assert.True(t, isErrorResult(res))
		assert.Contains(t, firstText(t, res), "duplicate package id")
	})
	t.Run("missing package id", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesCSV)
		res, err := srv.handleAddPackage(t.Context(), toolReq(map[string]any{
			"package_data": map[string]any{"label": "URGENT"},
		}))
		require.NoError(t, err)
		assert.True(t, isErrorResult(res))
		assert.Contains(t, firstText(t, res), "package id is empty")
	})
	t.Run("package_data not an object", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesCSV)
		res, err := srv.handleAddPackage(t.Context(), toolReq(map[string]any{"package_data": "PKG004"}))
		require.NoError(t, err)
		assert.True(t, isErrorResult(res))
		assert.Contains(t, firstText(t, res), "package_data is required")
	})
}

// ─── handleDeletePackage ──────────────────────────────────────────────────────

func TestHandleDeletePackage(t *testing.T) {
	t.Run("deletes and persists", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesCSV)
		res, err := srv.handleDeletePackage(t.Context(), toolReq(map[string]any{"package_id": "PKG002"}))
		require.NoError(t, err)
		require.False(t, isErrorResult(res))
		assert.Equal(t, "Package PKG002 deleted successfully", firstText(t, res))

		reopened, err := postoffice.Open(srv.store.Path())
		require.NoError(t, err)
		assert.Equal(t, 2, reopened.Len())
	})
	t.Run("not found is informational", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesCSV)
		res, err := srv.handleDeletePackage(t.Context(), toolReq(map[string]any{"package_id": "PKG999"}))
		require.NoError(t, err)
		assert.False(t, isErrorResult(res))
		assert.Equal(t, "Package PKG999 not found", firstText(t, res))
	})
}

// ─── handleDeletePackages ─────────────────────────────────────────────────────

func TestHandleDeletePackages(t *testing.T) {
	t.Run("reports the number deleted", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesCSV)
		res, err := srv.handleDeletePackages(t.Context(), toolReq(map[string]any{
			"package_ids": []any{"PKG001", "PKG003", "PKG999"},
		}))
		require.NoError(t, err)
		require.False(t, isErrorResult(res))
		assert.Equal(t, "Deleted 2 packages successfully", firstText(t, res))

		reopened, err := postoffice.Open(srv.store.Path())
		require.NoError(t, err)
		assert.Equal(t, 1, reopened.Len())
	})
	t.Run("none match", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesCSV)
		res, err := srv.handleDeletePackages(t.Context(), toolReq(map[string]any{"package_ids": []any{"PKG999"}}))
		require.NoError(t, err)
		require.False(t, isErrorResult(res))
		assert.Equal(t, "Deleted 0 packages successfully", firstText(t, res))
	})
	t.Run("non-string element", func(t *testing.T) {
		srv := newTestServer(t, fixtures.TestPackagesCSV)
		res, err := srv.handleDeletePackages(t.Context(), toolReq(map[string]any{"package_ids": []any{"PKG001", 2.0}}))
		require.NoError(t, err)
		assert.True(t, isErrorResult(res))
		assert.Contains(t, firstText(t, res), "array of strings")
	})
}
