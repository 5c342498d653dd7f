package handlers

import (
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
)

// unreachableDB opens a lazy handle against a port nothing listens on, so
// the first query fails at the driver instead of at Open.
func unreachableDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(
		postgres.Open("host=127.0.0.1 port=1 user=x dbname=x sslmode=disable connect_timeout=1"),
		&gorm.Config{DisableAutomaticPing: true},
	)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return db
}

func TestCreateUserSurfacesStoreErrors(t *testing.T) {
	db := unreachableDB(t)

	user, err := createUser(db, "ana", "password123", "ana@example.com", "Patient")
	if err == nil {
		t.Fatal("expected an error from the failed uniqueness check")
	}
	if user != nil {
		t.Fatal("no user may come back when the uniqueness check fails")
	}
	// A failed query is a storage error; it must never read as the
	// duplicate-account conflict, and never fall through to the insert.
	if httperr.IsBusiness(err, "username_or_email_exists") {
		t.Fatalf("store failure misread as duplicate: %v", err)
	}
}
